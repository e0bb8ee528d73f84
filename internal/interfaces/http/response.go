package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/foodorder-api/internal/application/dto"
	"github.com/jhoicas/foodorder-api/internal/domain"
	"github.com/jhoicas/foodorder-api/pkg/logger"
)

// IdempotencyHeader cabecera con la clave de idempotencia de las operaciones que cobran o descuentan.
const IdempotencyHeader = "Idempotency-Key"

const maxIdempotencyKeyLen = 128

var validate = validator.New(validator.WithRequiredStructEnabled())

// bindJSON parsea el cuerpo y valida las etiquetas validate del DTO.
// Los fallos envuelven domain.ErrInvalidInput.
func bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput)
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "entrada inválida"
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			details = append(details, fmt.Sprintf("%s es requerido", fe.Field()))
		case "oneof":
			details = append(details, fmt.Sprintf("%s debe ser uno de: %s", fe.Field(), fe.Param()))
		default:
			details = append(details, fmt.Sprintf("%s es inválido", fe.Field()))
		}
	}
	return strings.Join(details, "; ")
}

// idempotencyKey lee la cabecera; vacía significa sin idempotencia.
func idempotencyKey(c *fiber.Ctx) (string, error) {
	key := strings.TrimSpace(c.Get(IdempotencyHeader))
	if len(key) > maxIdempotencyKeyLen {
		return "", fmt.Errorf("%w: %s demasiado larga", domain.ErrInvalidInput, IdempotencyHeader)
	}
	return key, nil
}

// errorHandler traduce errores de casos de uso a respuestas HTTP.
// Los errores no tipados se registran y nunca se exponen al cliente.
type errorHandler struct {
	log *logger.Logger
}

func (h errorHandler) respond(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", err.Error()))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("NOT_FOUND", err.Error()))
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("CONFLICT", err.Error()))
	case errors.Is(err, domain.ErrInsufficientPoints):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("INSUFFICIENT_POINTS", err.Error()))
	}
	h.log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("INTERNAL", "operation failed"))
}
