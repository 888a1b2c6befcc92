package utils

import "github.com/gofiber/fiber/v2"

// Response is the envelope every endpoint returns. Data carries the payload
// on success, Error the message on failure; Meta is present only on
// paginated lists.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Meta struct {
	Page      int   `json:"page,omitempty"`
	PageSize  int   `json:"page_size,omitempty"`
	Total     int64 `json:"total,omitempty"`
	TotalPage int   `json:"total_page,omitempty"`
}

func respond(c *fiber.Ctx, code int, resp Response) error {
	return c.Status(code).JSON(resp)
}

func Success(c *fiber.Ctx, data interface{}, message string, statusCode ...int) error {
	code := fiber.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}
	return respond(c, code, Response{Success: true, Message: message, Data: data})
}

func SuccessWithMeta(c *fiber.Ctx, data interface{}, meta *Meta, message string) error {
	return respond(c, fiber.StatusOK, Response{Success: true, Message: message, Data: data, Meta: meta})
}

func Error(c *fiber.Ctx, message string, statusCode ...int) error {
	code := fiber.StatusBadRequest
	if len(statusCode) > 0 {
		code = statusCode[0]
	}
	return respond(c, code, Response{Success: false, Error: message})
}
