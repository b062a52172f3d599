package wix

// Event is the wire representation of a Wix V3 event. Only the fields this
// tool reads or writes are modeled; unknown fields are dropped on decode.
//
// ShortDescription, DetailedDescription and MainImage intentionally lack
// omitempty: updates are full payload replacements, and an empty string or
// explicit null must reach the API to clear a stale value.
type Event struct {
	ID                  string               `json:"id,omitempty"`
	Title               string               `json:"title,omitempty"`
	DateAndTimeSettings *DateAndTimeSettings `json:"dateAndTimeSettings,omitempty"`
	Location            *Location            `json:"location,omitempty"`
	Registration        *Registration        `json:"registration,omitempty"`
	ShortDescription    string               `json:"shortDescription"`
	DetailedDescription string               `json:"detailedDescription"`
	MainImage           *MainImage           `json:"mainImage"`
	Status              string               `json:"status,omitempty"`
}

// DateAndTimeSettings carries the event schedule in UTC plus the site
// timezone the wall-clock times were entered in.
type DateAndTimeSettings struct {
	DateAndTimeTbd bool   `json:"dateAndTimeTbd"`
	StartDate      string `json:"startDate,omitempty"`
	EndDate        string `json:"endDate,omitempty"`
	TimeZoneID     string `json:"timeZoneId,omitempty"`
}

// Location describes where the event takes place.
type Location struct {
	Type    string   `json:"type,omitempty"`
	Address *Address `json:"address,omitempty"`
}

// Address holds the free-form venue string.
type Address struct {
	FormattedAddress string `json:"formattedAddress,omitempty"`
}

// Registration selects how guests register.
type Registration struct {
	InitialType string `json:"initialType,omitempty"`
}

// MainImage references an uploaded media file by id plus its dimensions.
type MainImage struct {
	ID     string `json:"id"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// TicketDefinition is the payload for creating a ticket type on a
// TICKETING event.
type TicketDefinition struct {
	EventID          string         `json:"eventId"`
	Name             string         `json:"name"`
	LimitPerCheckout int            `json:"limitPerCheckout,omitempty"`
	PricingMethod    *PricingMethod `json:"pricingMethod,omitempty"`
	FeeType          string         `json:"feeType,omitempty"`
	Limited          bool           `json:"limited,omitempty"`
	Quantity         int            `json:"quantity,omitempty"`
}

// PricingMethod wraps the fixed-price variant used by this tool.
type PricingMethod struct {
	FixedPrice *Money `json:"fixedPrice,omitempty"`
}

// Money is a decimal amount expressed as a string, per the Wix wire format.
type Money struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// FileDescriptor is the Media Manager's description of an uploaded file.
type FileDescriptor struct {
	ID    string    `json:"id"`
	Media FileMedia `json:"media"`
}

// FileMedia nests the image metadata returned by the upload endpoint.
type FileMedia struct {
	Image FileImage `json:"image"`
}

// FileImage wraps the inner image dimensions object.
type FileImage struct {
	Image ImageDimensions `json:"image"`
}

// ImageDimensions reports pixel dimensions of an uploaded image.
type ImageDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Dimensions returns the uploaded image's width and height, when known.
func (f *FileDescriptor) Dimensions() (width, height int) {
	return f.Media.Image.Image.Width, f.Media.Image.Image.Height
}

// RSVP is a single RSVP record for an event.
type RSVP struct {
	ID      string `json:"id"`
	EventID string `json:"eventId"`
	Status  string `json:"status,omitempty"`
}

// Order is a single ticket order for an event.
type Order struct {
	OrderNumber string `json:"orderNumber"`
	EventID     string `json:"eventId"`
	Status      string `json:"status,omitempty"`
}

// pagingMetadata is returned alongside query results. A non-empty NextCursor
// means the platform supports cursor paging for this listing.
type pagingMetadata struct {
	NextCursor string `json:"nextCursor"`
}

// queryPaging is the paging block of a query request. Offset is a pointer so
// the first page carries only the limit.
type queryPaging struct {
	Limit  int    `json:"limit"`
	Offset *int   `json:"offset,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}
