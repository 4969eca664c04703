package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

type ListNotificationsInput struct {
	Unread bool `query:"unread" required:"false" doc:"Only return unread notifications"`
}

type ListNotificationsOutput struct {
	Body []NotificationResponse
}

type MarkReadInput struct {
	ID string `path:"id" doc:"Notification ID"`
}

func (h *handlers) registerNotifications() {
	huma.Register(h.api, h.authenticated(huma.Operation{
		OperationID: "list-notifications",
		Method:      http.MethodGet,
		Path:        "/api/v1/notifications",
		Summary:     "List the caller's notifications, newest first",
		Tags:        []string{"Notifications"},
	}), func(ctx context.Context, input *ListNotificationsInput) (*ListNotificationsOutput, error) {
		items, err := h.Notifications.List(ctx, userIDFrom(ctx), input.Unread)
		if err != nil {
			return nil, toHumaError(ctx, h.Logger, err)
		}

		resp := make([]NotificationResponse, len(items))
		for i, n := range items {
			resp[i] = toNotificationResponse(n)
		}
		return &ListNotificationsOutput{Body: resp}, nil
	})

	huma.Register(h.api, h.authenticated(huma.Operation{
		OperationID:   "mark-notification-read",
		Method:        http.MethodPut,
		Path:          "/api/v1/notifications/{id}/read",
		Summary:       "Mark a notification as read",
		Tags:          []string{"Notifications"},
		DefaultStatus: http.StatusNoContent,
	}), func(ctx context.Context, input *MarkReadInput) (*struct{}, error) {
		if err := h.Notifications.MarkRead(ctx, userIDFrom(ctx), input.ID); err != nil {
			return nil, toHumaError(ctx, h.Logger, err)
		}
		return nil, nil
	})
}
