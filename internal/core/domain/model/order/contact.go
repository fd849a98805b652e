package order

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Contact is the free-form customer data captured with the order. Guest orders rely
// on it entirely since they carry no customer account.
type Contact struct {
	name    string
	phone   string
	address string
	city    string
}

// NewContact requires name, phone and delivery address; city is optional.
func NewContact(name, phone, address, city string) (Contact, error) {
	c := Contact{
		name:    strings.TrimSpace(name),
		phone:   strings.TrimSpace(phone),
		address: strings.TrimSpace(address),
		city:    strings.TrimSpace(city),
	}

	var errList []error
	if c.name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("customer name"))
	}
	if c.phone == "" {
		errList = append(errList, errs.NewValueIsRequiredError("customer phone"))
	}
	if c.address == "" {
		errList = append(errList, errs.NewValueIsRequiredError("delivery address"))
	}
	if err := errors.Join(errList...); err != nil {
		return Contact{}, err
	}

	return c, nil
}

func (c Contact) Name() string { return c.name }
func (c Contact) Phone() string { return c.phone }
func (c Contact) Address() string { return c.address }
func (c Contact) City() string { return c.city }

// IsZero reports whether c is the zero value.
func (c Contact) IsZero() bool {
	return c == Contact{}
}
