package session

import (
	"fmt"

	"github.com/Coconhat/Currency-converter/pkg/converter"
	"github.com/Coconhat/Currency-converter/pkg/currency"
	sessionsvc "github.com/Coconhat/Currency-converter/pkg/service/session"
	"github.com/Coconhat/Currency-converter/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers HTTP routes for converter sessions. A session is one
// mounted converter view; deleting it unmounts the view.
func Routes(app *fiber.App, svc *sessionsvc.Service) {
	sessionGroup := app.Group("/api/sessions")

	sessionGroup.Post("/", CreateSession(svc))
	sessionGroup.Get("/:id", GetSession(svc))
	sessionGroup.Patch("/:id", UpdateSession(svc))
	sessionGroup.Post("/:id/swap", SwapSession(svc))
	sessionGroup.Delete("/:id", DeleteSession(svc))
}

// CreateSession mounts a new converter view.
// @Summary Create a session
// @Description Create a converter session with no amount and USD to EUR selected
// @Tags sessions
// @Produce json
// @Success 201 {object} common.Response{data=session.SessionResponse}
// @Router /api/sessions [post]
func CreateSession(svc *sessionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, view := svc.Create(c.Context())
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Session created", ToResponse(id, view))
	}
}

// GetSession returns the session state. With ?flush=true a pending lookup is
// issued immediately and the response waits for it.
// @Summary Get a session
// @Description Get the state and display of a session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param flush query bool false "Issue a pending lookup now and wait for it"
// @Success 200 {object} common.Response{data=session.SessionResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/sessions/{id} [get]
func GetSession(svc *sessionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, view, err := lookup(c, svc)
		if err != nil {
			return err
		}
		if c.QueryBool("flush") {
			view.Flush()
			view.Wait()
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Session fetched", ToResponse(id, view))
	}
}

// UpdateSession applies amount, from and to in that order. Currency codes are
// checked before anything is applied.
// @Summary Update a session
// @Description Set the amount and/or the selected currencies; absent fields are unchanged
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body UpdateRequest true "Fields to change"
// @Success 200 {object} common.Response{data=session.SessionResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /api/sessions/{id} [patch]
func UpdateSession(svc *sessionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, view, err := lookup(c, svc)
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[UpdateRequest](c)
		if err != nil {
			return nil // problem already written
		}

		for _, code := range []*string{input.From, input.To} {
			if code != nil && !currency.IsSupported(*code) {
				return common.ProblemDetailsJSON(c, "Unsupported currency",
					fmt.Errorf("%w: %q", currency.ErrUnsupportedCurrency, *code))
			}
		}

		if input.Amount != nil {
			err = view.SetAmount(*input.Amount)
		}
		if err == nil && input.From != nil {
			err = view.SelectSource(*input.From)
		}
		if err == nil && input.To != nil {
			err = view.SelectTarget(*input.To)
		}
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update session", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Session updated", ToResponse(id, view))
	}
}

// SwapSession exchanges source and target currencies.
// @Summary Swap currencies
// @Description Exchange the source and target currencies in one step
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} common.Response{data=session.SessionResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/sessions/{id}/swap [post]
func SwapSession(svc *sessionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, view, err := lookup(c, svc)
		if err != nil {
			return err
		}
		if err := view.Swap(); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to swap currencies", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currencies swapped", ToResponse(id, view))
	}
}

// DeleteSession unmounts the view. A pending lookup is cancelled.
// @Summary Delete a session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/sessions/{id} [delete]
func DeleteSession(svc *sessionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		if err := svc.Delete(id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// lookup resolves the :id parameter. Its errors are rendered by
// common.ErrorHandler.
func lookup(c *fiber.Ctx, svc *sessionsvc.Service) (uuid.UUID, *converter.View, error) {
	id, err := parseID(c)
	if err != nil {
		return uuid.Nil, nil, err
	}
	view, err := svc.Get(id)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return id, view, nil
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "session ID must be a valid UUID")
	}
	return id, nil
}
