package commands

import (
	"errors"
	"strings"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/ports"
	"movers/internal/pkg/errs"
	"movers/internal/pkg/guard"

	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is used for numbers given without a country prefix.
const DefaultPhoneRegion = "US"

var ErrRegisterMoverCommandIsNotConstructed = errors.New(
	"RegisterMoverCommand must be created via NewRegisterMoverCommand constructor",
)

// RegisterMoverCommand signs up a new mover and sends their identity document
// for vetting.
//
// Example:
//
//	cmd, err := NewRegisterMoverCommand(kernel.NewUUID(), "Ann", "(201) 555-0123", "Box truck",
//	    location, ports.IdentityDocument{FullName: "Ann Smith", DocumentType: "passport", DocumentNumber: "X123"})
type RegisterMoverCommand struct { //nolint:recvcheck //using for validation
	moverID  kernel.UUID
	name     string
	phone    string
	vehicle  string
	location kernel.Location
	document ports.IdentityDocument

	guard guard.ConstructorGuard
}

// NewRegisterMoverCommand normalizes phone to E.164.
func NewRegisterMoverCommand(
	moverID kernel.UUID,
	name, phone, vehicle string,
	location kernel.Location,
	document ports.IdentityDocument,
) (RegisterMoverCommand, error) {
	cmd := RegisterMoverCommand{
		name:    strings.TrimSpace(name),
		vehicle: strings.TrimSpace(vehicle),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMoverID(moverID),
		cmd.setName(cmd.name),
		cmd.setPhone(phone),
		cmd.setLocation(location),
		cmd.setDocument(document),
	); err != nil {
		return RegisterMoverCommand{}, err
	}

	return cmd, nil
}

func (c RegisterMoverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterMoverCommandIsNotConstructed)
}

func (c RegisterMoverCommand) MoverID() kernel.UUID {
	return c.moverID
}

func (c RegisterMoverCommand) Name() string {
	return c.name
}

// Phone is in E.164 form.
func (c RegisterMoverCommand) Phone() string {
	return c.phone
}

func (c RegisterMoverCommand) Vehicle() string {
	return c.vehicle
}

func (c RegisterMoverCommand) Location() kernel.Location {
	return c.location
}

func (c RegisterMoverCommand) Document() ports.IdentityDocument {
	return c.document
}

func (c *RegisterMoverCommand) setMoverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.moverID = id
	return nil
}

func (c *RegisterMoverCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	return nil
}

func (c *RegisterMoverCommand) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}

	number, err := phonenumbers.Parse(phone, DefaultPhoneRegion)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("phone", err)
	}
	if !phonenumbers.IsValidNumber(number) {
		return errs.NewValueIsInvalidError("phone")
	}

	c.phone = phonenumbers.Format(number, phonenumbers.E164)
	return nil
}

func (c *RegisterMoverCommand) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}

func (c *RegisterMoverCommand) setDocument(doc ports.IdentityDocument) error {
	doc.FullName = strings.TrimSpace(doc.FullName)
	doc.DocumentType = strings.TrimSpace(doc.DocumentType)
	doc.DocumentNumber = strings.TrimSpace(doc.DocumentNumber)
	doc.Country = strings.ToUpper(strings.TrimSpace(doc.Country))

	var err error
	if doc.FullName == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("document.fullName"))
	}
	if doc.DocumentNumber == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("document.number"))
	}
	if err != nil {
		return err
	}

	c.document = doc
	return nil
}
