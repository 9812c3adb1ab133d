package controller

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"cashlytic-pos/apperror"
)

// statusFor maps an error kind onto an HTTP status
func statusFor(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}

	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindReference, apperror.KindConstraint:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError logs err and writes it as {"error": "..."} with the mapped status
func respondError(c *fiber.Ctx, op string, err error) error {
	status := statusFor(err)
	log.Printf("❌ %s: %v", op, err)

	return c.Status(status).JSON(fiber.Map{
		"error": messageOf(err),
	})
}

// messageOf returns the user-facing message of an error. Boundary errors keep
// their full text so the underlying cause is not hidden.
func messageOf(err error) string {
	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Kind != apperror.KindBoundary {
		return appErr.Message
	}
	return err.Error()
}

// badRequest writes a 400 with a fixed message
func badRequest(c *fiber.Ctx, op, message string) error {
	log.Printf("❌ %s: %s", op, message)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}

// idParam parses a positive integer route parameter
func idParam(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// logRequest writes the standard handler entry line
func logRequest(c *fiber.Ctx, handler string) {
	log.Printf("📥 %s: Received %s request to %s", handler, c.Method(), c.Path())
}
