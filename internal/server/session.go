package server

import (
	"context"
	"fmt"
	"slices"

	"github.com/muurk/formguard/internal/registry"
	"github.com/muurk/formguard/internal/validation"
	"github.com/muurk/formguard/internal/wrapper"
)

// remoteControl stands in for a control that lives in the client.
// Focus requests are queued on the session and sent with the next reply.
type remoteControl struct {
	name    string
	session *Session
	pos     *wrapper.Position
	offset  int
}

func (c *remoteControl) View(wrapper.Props) string {
	return ""
}

func (c *remoteControl) ScrollIntoView(ctx context.Context, s wrapper.ScrollSettings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.offset = s.VerticalOffset
	return nil
}

func (c *remoteControl) Focus() {
	c.session.outbox = append(c.session.outbox, ServerMessage{
		Type:   TypeFocus,
		Field:  c.name,
		Offset: c.offset,
	})
}

func (c *remoteControl) Position() (wrapper.Position, bool) {
	if c.pos == nil {
		return wrapper.Position{}, false
	}
	return *c.pos, true
}

type sessionField struct {
	control *remoteControl
	wrapper *wrapper.Wrapper
}

// Session is the server side of one remote form. It is not safe for
// concurrent use; the connection goroutine owns it.
type Session struct {
	registry *registry.Registry
	fields   map[string]*sessionField
	order    []string
	outbox   []ServerMessage
}

// NewSession creates an empty session. opts configure its registry.
func NewSession(opts ...registry.Option) *Session {
	return &Session{
		registry: registry.New(opts...),
		fields:   make(map[string]*sessionField),
	}
}

// Registry returns the session's registry.
func (s *Session) Registry() *registry.Registry {
	return s.registry
}

// Handle applies msg and returns the replies to send, in order. A failed
// message yields a single error reply together with the error.
func (s *Session) Handle(ctx context.Context, msg ClientMessage) ([]ServerMessage, error) {
	s.outbox = s.outbox[:0]

	if err := s.apply(ctx, msg); err != nil {
		return []ServerMessage{{Type: TypeError, Field: msg.Field, Error: err.Error()}}, err
	}

	replies := slices.Clone(s.outbox)
	return append(replies, s.State()), nil
}

func (s *Session) apply(ctx context.Context, msg ClientMessage) error {
	fail := func(err error) error {
		return &MessageError{Type: msg.Type, Field: msg.Field, Err: err}
	}

	switch msg.Type {
	case TypeValidate:
		if _, err := s.registry.Validate(ctx); err != nil {
			return fail(err)
		}
		return nil
	case TypeMount:
		if msg.Field == "" {
			return fail(ErrMissingField)
		}
		if err := s.mount(msg); err != nil {
			return fail(err)
		}
		return nil
	case TypeRules, TypeChange, TypeBlur, TypeEmulateBlur, TypeSubmit, TypeFocus, TypeUnmount:
	default:
		return fail(fmt.Errorf("%w %q", ErrUnknownType, msg.Type))
	}

	f, ok := s.fields[msg.Field]
	if !ok {
		return fail(ErrUnknownField)
	}
	w := f.wrapper

	var err error
	switch msg.Type {
	case TypeRules:
		if err = validation.ValidateRules(msg.Rules); err == nil {
			err = w.SetRules(msg.Rules)
		}
	case TypeChange:
		w.HandleChange()
	case TypeBlur:
		w.HandleBlur()
	case TypeEmulateBlur:
		w.EmulateBlur()
	case TypeSubmit:
		err = w.Submit(ctx)
	case TypeFocus:
		err = w.Focus(ctx)
	case TypeUnmount:
		s.remove(msg.Field)
	}
	if err != nil {
		return fail(err)
	}
	return nil
}

// mount creates a field, or updates the rules and position of a field that
// is already mounted.
func (s *Session) mount(msg ClientMessage) error {
	if err := validation.ValidateRules(msg.Rules); err != nil {
		return err
	}
	if f, ok := s.fields[msg.Field]; ok {
		if msg.Position != nil {
			f.control.pos = msg.Position
		}
		return f.wrapper.SetRules(msg.Rules)
	}

	ctrl := &remoteControl{name: msg.Field, session: s, pos: msg.Position}
	w, err := wrapper.New(ctrl, msg.Rules, nil,
		wrapper.WithName(msg.Field),
		wrapper.WithRegistry(s.registry),
	)
	if err != nil {
		return err
	}
	w.Mount()
	s.fields[msg.Field] = &sessionField{control: ctrl, wrapper: w}
	s.order = append(s.order, msg.Field)
	return nil
}

func (s *Session) remove(name string) {
	f, ok := s.fields[name]
	if !ok {
		return
	}
	f.wrapper.Unmount()
	delete(s.fields, name)
	s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == name })
}

// State returns a state message for every mounted field, in mount order.
func (s *Session) State() ServerMessage {
	msg := ServerMessage{Type: TypeState, Valid: s.registry.IsValid()}
	for _, name := range s.order {
		msg.Fields = append(msg.Fields, s.fields[name].wrapper.Snapshot())
	}
	return msg
}

// Close unmounts every field.
func (s *Session) Close() {
	for _, name := range slices.Clone(s.order) {
		s.remove(name)
	}
}
