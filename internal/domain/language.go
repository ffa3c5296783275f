package domain

type Language struct {
	LanguageID string `json:"id" dynamodbav:"language_id"`
	Code       string `json:"code" dynamodbav:"code"`
	Direction  string `json:"direction" dynamodbav:"direction"` // "ltr" | "rtl"
	FontClass  string `json:"font_class,omitempty" dynamodbav:"font_class"`
}

type LanguageInput struct {
	Code      string `json:"code" validate:"required"`
	Direction string `json:"direction" validate:"required,oneof=ltr rtl"`
	FontClass string `json:"font_class"`
}

type UpdateLanguageRequest struct {
	Code      *string `json:"code"`
	Direction *string `json:"direction"`
	FontClass *string `json:"font_class"`
}
