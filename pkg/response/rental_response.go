// Package response provides standard API response utilities.
package response

import (
	"github.com/gofiber/fiber/v2"
)

// Response is the standard API response structure.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *PageMeta   `json:"meta,omitempty"`
}

// ErrorInfo contains error details.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PageMeta contains pagination metadata.
type PageMeta struct {
	Page          int  `json:"page"`
	Take          int  `json:"take"`
	ItemCount     int  `json:"item_count"`
	PageCount     int  `json:"page_count"`
	HasBeforePage bool `json:"has_before_page"`
	HasNextPage   bool `json:"has_next_page"`
}

// NewPageMeta builds pagination metadata from the requested page/take and
// the total item count.
func NewPageMeta(page, take, itemCount int) *PageMeta {
	pageCount := (itemCount + take - 1) / take
	return &PageMeta{
		Page:          page,
		Take:          take,
		ItemCount:     itemCount,
		PageCount:     pageCount,
		HasBeforePage: page > 1,
		HasNextPage:   page < pageCount,
	}
}

// OK returns a successful response.
func OK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Data:    data,
	})
}

// OKWithMeta returns a successful response with pagination metadata.
func OKWithMeta(c *fiber.Ctx, data interface{}, meta *PageMeta) error {
	return c.JSON(Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Created returns a 201 created response.
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(201).JSON(Response{
		Success: true,
		Data:    data,
	})
}

// Message returns a successful response carrying only a human message.
func Message(c *fiber.Ctx, msg string) error {
	return c.JSON(Response{
		Success: true,
		Data:    fiber.Map{"message": msg},
	})
}

// NoContent returns a 204 no content response.
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(204)
}

// Error returns an error response.
func Error(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}
