package domain

import "time"

// Ticket is the immutable service request produced at the end of the flow
type Ticket struct {
	ID                   string    `json:"id"`
	RequesterID          int64     `json:"requester_id"`
	RequesterDisplayName string    `json:"requester_display_name"`
	RequesterHandle      string    `json:"requester_handle,omitempty"`
	ApplianceKey         string    `json:"appliance_key"`
	RegionKey            string    `json:"region_key"`
	ProblemText          string    `json:"problem_text"`
	PhoneRaw             string    `json:"phone_raw"`
	AddressText          string    `json:"address_text"`
	Language             Language  `json:"language"`
	CreatedAt            time.Time `json:"created_at"`
}

// Delivery is the outcome of sending a ticket to one recipient
type Delivery struct {
	RecipientID int64
	Err         error
}

// OK reports whether the delivery succeeded
func (d Delivery) OK() bool {
	return d.Err == nil
}

// DispatchReport records per-recipient delivery results for one ticket
type DispatchReport struct {
	TicketID   string
	RegionKey  string
	Deliveries []Delivery
}

// Delivered returns the number of successful deliveries
func (r DispatchReport) Delivered() int {
	n := 0
	for _, d := range r.Deliveries {
		if d.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of failed deliveries
func (r DispatchReport) Failed() int {
	return len(r.Deliveries) - r.Delivered()
}

// Unrouted reports whether no recipient received the ticket
func (r DispatchReport) Unrouted() bool {
	return r.Delivered() == 0
}
