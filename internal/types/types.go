package types

// IntakeForm carries the text fields of a form submission as received from
// the multipart body. All four fields are opaque strings; `age` is
// deliberately not parsed as a number.
type IntakeForm struct {
	Name    string `form:"name"    json:"name"    validate:"required"`
	Age     string `form:"age"     json:"age"     validate:"required"`
	Message string `form:"message" json:"message" validate:"required"`
	Email   string `form:"email"   json:"email"   validate:"required"`
}
