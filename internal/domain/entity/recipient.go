package entity

// Recipient identifies the target of a notification send, independent of
// the delivery channel.
type Recipient struct {
	CustomerID string
	Name       string
	Email      string
	Phone      string
}

// Recipient derives the notification recipient from the subscription's
// customer details.
func (s *Subscription) Recipient() Recipient {
	return Recipient{
		CustomerID: s.CustomerID,
		Name:       s.CustomerName,
		Email:      s.CustomerEmail,
		Phone:      s.CustomerPhone,
	}
}

// Recipient derives the notification recipient from the customer record.
func (c *Customer) Recipient() Recipient {
	return Recipient{
		CustomerID: c.CustomerID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
	}
}
