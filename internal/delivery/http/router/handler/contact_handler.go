package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ContactHandlerParams holds dependencies for ContactHandler, injected by Fx.
type ContactHandlerParams struct {
	fx.In

	ContactUC    usecase.ContactUsecase
	NewsletterUC usecase.NewsletterUsecase
	Logger       *slog.Logger
}

// ContactHandler serves the contact form, the admin inbox and newsletter signups.
type ContactHandler struct {
	contactUC    usecase.ContactUsecase
	newsletterUC usecase.NewsletterUsecase
	logger       *slog.Logger
}

// NewContactHandler is the constructor for ContactHandler.
func NewContactHandler(params ContactHandlerParams) *ContactHandler {
	return &ContactHandler{
		contactUC:    params.ContactUC,
		newsletterUC: params.NewsletterUC,
		logger:       params.Logger,
	}
}

// SubmitContactRequest is the public contact form. Required fields are checked by the use case.
type SubmitContactRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

// UpdateContactStatusRequest is the body of PUT /admin/contacts/:id.
type UpdateContactStatusRequest struct {
	Status string `json:"status"`
}

// SubscribeRequest is the body of POST /newsletter/subscribe.
type SubscribeRequest struct {
	Email string `json:"email"`
}

// SubmitContact stores a contact form message.
func (h *ContactHandler) SubmitContact(c echo.Context) error {
	var req SubmitContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	message, err := h.contactUC.Submit(c.Request().Context(), &usecase.SubmitContactInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toContactResponse(message), "Message sent successfully")
}

// ListContacts is the admin inbox.
func (h *ContactHandler) ListContacts(c echo.Context) error {
	page, err := h.contactUC.List(c.Request().Context(), &usecase.ListContactsInput{
		Status: c.QueryParam("status"),
		Page:   pageRequest(c),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Paginated(c, toContactResponses(page.Messages), page.Pagination, "")
}

// UpdateContactStatus marks a message as read or replied.
func (h *ContactHandler) UpdateContactStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateContactStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	message, err := h.contactUC.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toContactResponse(message), "Message updated successfully")
}

// DeleteContact removes a message.
func (h *ContactHandler) DeleteContact(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.contactUC.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Message deleted successfully")
}

// Subscribe adds an email to the newsletter. A reactivated signup answers 200, a new one 201.
func (h *ContactHandler) Subscribe(c echo.Context) error {
	var req SubscribeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.newsletterUC.Subscribe(c.Request().Context(), req.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	data := &SubscriberResponse{
		Email:        output.Subscriber.Email,
		IsActive:     output.Subscriber.IsActive,
		SubscribedAt: output.Subscriber.SubscribedAt,
	}
	if output.Reactivated {
		return response.Success(c, http.StatusOK, data, "Subscription reactivated")
	}

	return response.Success(c, http.StatusCreated, data, "Subscribed successfully")
}
