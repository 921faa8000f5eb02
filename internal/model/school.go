package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// School is a row of the school_records table, the target of the CRUD routes.
type School struct {
	ID         int64  `json:"id"`
	SchoolName string `json:"school_name"`
	Location   string `json:"location"`
}

// SchoolInput is the request body accepted by create and update.
type SchoolInput struct {
	SchoolName string `json:"school_name"`
	Location   string `json:"location"`
}

// Validate trims the input and rejects a blank school name.
func (in *SchoolInput) Validate() error {
	in.SchoolName = strings.TrimSpace(in.SchoolName)
	in.Location = strings.TrimSpace(in.Location)
	if in.SchoolName == "" {
		return eris.New("school_name is required")
	}
	return nil
}

// Created is the response body of a successful create.
type Created struct {
	ID int64 `json:"id"`
}
