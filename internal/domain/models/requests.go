package models

// AnalyzeRequest carries the analyze endpoint parameters.
type AnalyzeRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required,max=16"`
	Filter string `query:"filter" json:"filter" default:"all" validate:"oneof=all after_up after_down"`
}
