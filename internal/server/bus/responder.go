// Package bus exposes the auth facade over NATS request/reply. Subjects and
// payload shapes match the message contract the service has always spoken:
// JSON requests, JSON replies, and a {status, message} envelope on failure.
package bus

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/smelnikov/authsvc/internal/common"
	"github.com/smelnikov/authsvc/internal/logging"
	"github.com/smelnikov/authsvc/internal/server/auth"
	"github.com/smelnikov/authsvc/internal/server/services"
	"github.com/smelnikov/authsvc/internal/server/validate"
)

const (
	SubjectRegister = "auth.register.user"
	SubjectLogin    = "auth.login.user"
	SubjectVerify   = "auth.verify.user"

	// queueGroup makes horizontally scaled instances split the subjects
	// instead of each answering every request.
	queueGroup = "auth"
)

type Responder struct {
	endpoints []string
	auth      *services.AuthService
	logger    logging.Logger
}

func NewResponder(endpoints []string, l logging.Logger, as *services.AuthService) *Responder {
	return &Responder{
		endpoints: endpoints,
		logger:    l.With("module", "bus_responder"),
		auth:      as,
	}
}

// Run connects to the bus, answers requests until ctx is cancelled, then
// drains the connection so in-flight replies still go out.
func (r *Responder) Run(ctx context.Context) error {

	conn, err := nats.Connect(strings.Join(r.endpoints, ","), nats.Name("authsvc"))
	if err != nil {
		return err
	}

	handlers := map[string]func(context.Context, []byte) []byte{
		SubjectRegister: r.handleRegister,
		SubjectLogin:    r.handleLogin,
		SubjectVerify:   r.handleVerify,
	}

	for subject, handle := range handlers {
		if _, err := conn.QueueSubscribe(subject, queueGroup, func(msg *nats.Msg) {
			reply := handle(ctx, msg.Data)
			if err := msg.Respond(reply); err != nil {
				r.logger.Error(ctx, "failed to respond", "subject", msg.Subject, "error", err.Error())
			}
		}); err != nil {
			conn.Close()
			return err
		}
	}

	r.logger.Info(ctx, "Listening on message bus", "endpoints", r.endpoints)

	<-ctx.Done()
	r.logger.Info(ctx, "Draining bus connection...")
	return conn.Drain()
}

type userPayload struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type authReply struct {
	User  userPayload `json:"user"`
	Token string      `json:"token"`
}

type errorEnvelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (r *Responder) handleRegister(ctx context.Context, data []byte) []byte {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return errorReply("invalid request payload")
	}
	if err := validate.Email(req.Email); err != nil {
		return errorReply(err.Error())
	}
	if err := validate.Name(req.Name); err != nil {
		return errorReply(err.Error())
	}
	if err := validate.Password(req.Password); err != nil {
		return errorReply(err.Error())
	}

	result, err := r.auth.Register(ctx, req.Email, req.Name, req.Password)
	if err != nil {
		return r.errorFor(ctx, err)
	}
	return successReply(result)
}

func (r *Responder) handleLogin(ctx context.Context, data []byte) []byte {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return errorReply("invalid request payload")
	}

	result, err := r.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return r.errorFor(ctx, err)
	}
	return successReply(result)
}

func (r *Responder) handleVerify(ctx context.Context, data []byte) []byte {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return errorReply("invalid request payload")
	}
	if err := validate.Token(req.Token); err != nil {
		return errorReply(err.Error())
	}

	result, err := r.auth.Verify(ctx, req.Token)
	if err != nil {
		return r.errorFor(ctx, err)
	}
	return successReply(result)
}

// errorFor maps facade errors onto the wire envelope. Every failure is a
// status 400 with a message; unexpected store errors pass their message
// through unchanged.
func (r *Responder) errorFor(ctx context.Context, err error) []byte {
	switch {
	case errors.Is(err, common.ErrEmailTaken):
		return errorReply("User already exists")
	case errors.Is(err, common.ErrInvalidCredentials):
		return errorReply("User/Password no valid")
	case errors.Is(err, common.ErrInvalidToken):
		return errorReply("Token invalid")
	default:
		r.logger.Error(ctx, "request failed", "error", err.Error())
		return errorReply(err.Error())
	}
}

func successReply(result *services.AuthResult) []byte {
	b, _ := json.Marshal(authReply{User: payloadOf(result.User), Token: result.Token})
	return b
}

func errorReply(message string) []byte {
	b, _ := json.Marshal(errorEnvelope{Status: 400, Message: message})
	return b
}

func payloadOf(id auth.Identity) userPayload {
	return userPayload{
		ID:        id.ID,
		Email:     id.Email,
		Name:      id.Name,
		CreatedAt: id.CreatedAt,
	}
}
