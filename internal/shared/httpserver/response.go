package httpserver

import "github.com/gofiber/fiber/v2"

// JSONResponse sends a structured JSON response
func JSONResponse(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends a structured error response
func JSONError(c *fiber.Ctx, status int, err error, message string) error {
	body := fiber.Map{
		"status":  status,
		"message": message,
	}
	if err != nil {
		body["error"] = err.Error()
	}
	return c.Status(status).JSON(body)
}
