package models

import "strings"

// Course represents a course identified by its code. The name is stored
// upper-cased.
type Course struct {
	ID   int64  `json:"id" db:"id"`
	Code string `json:"code" db:"code"`
	Name string `json:"name" db:"name"`
}

// Normalize applies the storage form of the course fields.
func (c *Course) Normalize() {
	c.Name = strings.ToUpper(c.Name)
}
