package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	chatsvc "github.com/campusbooks/campusbooks-backend/internal/chat"
)

type stubChatService struct {
	thread   *chatsvc.ThreadDTO
	threads  []chatsvc.ThreadDTO
	messages []chatsvc.MessageDTO
	message  *chatsvc.MessageDTO
	err      error

	listedFor uuid.UUID
	sentBody  string
}

func (s *stubChatService) CreateOrGetThread(_ context.Context, _ uuid.UUID, _ chatsvc.CreateThreadInput) (*chatsvc.ThreadDTO, error) {
	return s.thread, s.err
}

func (s *stubChatService) FindThread(_ context.Context, _, _ uuid.UUID) (*chatsvc.ThreadDTO, error) {
	return s.thread, s.err
}

func (s *stubChatService) ListThreads(_ context.Context, actorID uuid.UUID) ([]chatsvc.ThreadDTO, error) {
	s.listedFor = actorID
	return s.threads, s.err
}

func (s *stubChatService) ListMessages(_ context.Context, _, _ uuid.UUID) ([]chatsvc.MessageDTO, error) {
	return s.messages, s.err
}

func (s *stubChatService) SendMessage(_ context.Context, _, _ uuid.UUID, input chatsvc.SendMessageInput) (*chatsvc.MessageDTO, error) {
	s.sentBody = input.Body
	return s.message, s.err
}

func TestListThreadsRejectsPathMismatch(t *testing.T) {
	svc := &stubChatService{}

	actor := uuid.New()
	other := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/chat/threads/"+other.String(), nil)
	req = withChiParams(asUser(req, actor), map[string]string{"userId": other.String()})
	rec := httptest.NewRecorder()

	ListThreads(svc, testLogger())(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 on user id mismatch, got %d", rec.Code)
	}
}

func TestListThreadsUsesSessionActor(t *testing.T) {
	svc := &stubChatService{threads: []chatsvc.ThreadDTO{}}

	actor := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/chat/threads/"+actor.String(), nil)
	req = withChiParams(asUser(req, actor), map[string]string{"userId": actor.String()})
	rec := httptest.NewRecorder()

	ListThreads(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.listedFor != actor {
		t.Fatal("inbox must be scoped to the session actor")
	}
}

func TestSendMessageCreated(t *testing.T) {
	actor := uuid.New()
	threadID := uuid.New()
	svc := &stubChatService{message: &chatsvc.MessageDTO{ID: uuid.New(), Body: "hello"}}

	req := httptest.NewRequest(http.MethodPost,
		"/api/chat/threads/"+threadID.String()+"/messages/"+actor.String(),
		strings.NewReader(`{"text":"hello"}`))
	req = withChiParams(asUser(req, actor), map[string]string{
		"threadId": threadID.String(),
		"userId":   actor.String(),
	})
	rec := httptest.NewRecorder()

	SendMessage(svc, testLogger())(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.sentBody != "hello" {
		t.Fatalf("expected body forwarded, got %q", svc.sentBody)
	}
}

func TestSendMessageRejectsEmptyBody(t *testing.T) {
	actor := uuid.New()
	threadID := uuid.New()
	svc := &stubChatService{}

	req := httptest.NewRequest(http.MethodPost,
		"/api/chat/threads/"+threadID.String()+"/messages/"+actor.String(),
		strings.NewReader(`{"text":""}`))
	req = withChiParams(asUser(req, actor), map[string]string{
		"threadId": threadID.String(),
		"userId":   actor.String(),
	})
	rec := httptest.NewRecorder()

	SendMessage(svc, testLogger())(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty body, got %d", rec.Code)
	}
}
