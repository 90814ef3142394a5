// Package api exposes the demonstrator actions over HTTP.
package api

import (
	"context"
	"embed"
	"errors"
	"net/http"

	"github.com/ItsNotGoodName/x-wmstate/internal/app"
	"github.com/ItsNotGoodName/x-wmstate/internal/build"
	"github.com/ItsNotGoodName/x-wmstate/internal/bus"
	"github.com/ItsNotGoodName/x-wmstate/internal/probe"
	"github.com/ItsNotGoodName/x-wmstate/pkg/chiext"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed web
var webFS embed.FS

// Actions runs actions on the UI loop.
type Actions interface {
	Do(ctx context.Context, action app.Action) (app.Result, error)
	Snapshot(ctx context.Context) (app.Snapshot, error)
}

type ActionInput struct {
	Action string `path:"action" enum:"min,max,min-step1,min-step2" doc:"Action to run."`
}

type ActionBody struct {
	ID     string `json:"id" doc:"Action id, also found in the log."`
	Action string `json:"action"`
	State  string `json:"state" doc:"State tracked by the toolkit after the action."`
}

type ActionOutput struct {
	Body ActionBody
}

type StateBody struct {
	Window     uint32 `json:"window"`
	State      string `json:"state" doc:"State tracked by the toolkit."`
	Probe      string `json:"probe,omitempty" doc:"State last reported by the window manager."`
	LastAction string `json:"last_action,omitempty"`
}

type StateOutput struct {
	Body StateBody
}

type StateEvent struct {
	Window uint32 `json:"window"`
	State  string `json:"state"`
}

func NewRouter(actions Actions, hub *bus.Hub[probe.StateObserved]) (http.Handler, error) {
	static, err := chiext.StaticEmbedFS(chiext.StaticFSConfig{
		FileSystem: webFS,
		Root:       "web",
	})
	if err != nil {
		return nil, err
	}

	r := chi.NewMux()
	r.Use(middleware.RequestID)
	r.Use(chiext.Logger())
	r.Use(middleware.Recoverer)
	r.Use(static)

	api := humachi.New(r, huma.DefaultConfig("x-wmstate", build.Current.Version))
	Register(api, actions, hub)

	return r, nil
}

// Register adds the operations to api. The event stream is only added when hub
// is not nil.
func Register(api huma.API, actions Actions, hub *bus.Hub[probe.StateObserved]) {
	huma.Register(api, huma.Operation{
		OperationID: "run-action",
		Method:      http.MethodPost,
		Path:        "/api/actions/{action}",
		Summary:     "Run an action",
	}, func(ctx context.Context, input *ActionInput) (*ActionOutput, error) {
		action, err := app.ParseAction(input.Action)
		if err != nil {
			return nil, huma.Error404NotFound(err.Error())
		}

		result, err := actions.Do(ctx, action)
		if err != nil {
			return nil, toStatusError(err)
		}

		return &ActionOutput{Body: ActionBody{
			ID:     result.ID,
			Action: string(result.Action),
			State:  result.State.String(),
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-state",
		Method:      http.MethodGet,
		Path:        "/api/state",
		Summary:     "Get the window state",
	}, func(ctx context.Context, input *struct{}) (*StateOutput, error) {
		snapshot, err := actions.Snapshot(ctx)
		if err != nil {
			return nil, toStatusError(err)
		}

		body := StateBody{
			Window:     snapshot.Window,
			State:      snapshot.State.String(),
			LastAction: snapshot.LastAction,
		}
		if snapshot.ProbeSeen {
			body.Probe = snapshot.Probe.String()
		}

		return &StateOutput{Body: body}, nil
	})

	if hub == nil {
		return
	}

	sse.Register(api, huma.Operation{
		OperationID: "stream-state",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Stream reported window states",
	}, map[string]any{
		"state": StateEvent{},
	}, func(ctx context.Context, input *struct{}, send sse.Sender) {
		eventC, unsubscribe := hub.Subscribe()
		defer unsubscribe()

		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventC:
				if err := send.Data(StateEvent{
					Window: event.Window,
					State:  event.State.String(),
				}); err != nil {
					return
				}
			}
		}
	})
}

func toStatusError(err error) error {
	switch {
	case errors.Is(err, app.ErrClosed):
		return huma.Error503ServiceUnavailable("window is closed", err)
	case errors.Is(err, app.ErrUnknownAction):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return huma.Error503ServiceUnavailable("request canceled", err)
	default:
		return huma.Error500InternalServerError("action failed", err)
	}
}
