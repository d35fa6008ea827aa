package services

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestAssessment_NavigationBounds(t *testing.T) {
	a, err := StartAssessment("stress")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if a.Previous() != "" || a.Cursor() != 0 {
		t.Fatalf("previous at 0 must be a no-op, cursor=%d", a.Cursor())
	}

	for i := 0; i < a.Len()-1; i++ {
		if done := a.Answer("answer"); done {
			t.Fatalf("completed early at %d", i)
		}
		if a.Cursor() != i+1 {
			t.Fatalf("cursor %d after %d answers", a.Cursor(), i+1)
		}
	}
	if a.Cursor() != a.Len()-1 {
		t.Fatalf("expected cursor at last question, got %d", a.Cursor())
	}
	if done := a.Answer("last"); !done || !a.Completed() {
		t.Fatal("answering last question should complete the assessment")
	}
	if a.Cursor() != a.Len()-1 {
		t.Errorf("cursor must stay in bounds after completion, got %d", a.Cursor())
	}
	if len(a.Result().Responses) != 10 {
		t.Errorf("expected 10 responses, got %d", len(a.Result().Responses))
	}
}

func TestAssessment_PreviousRestoresAnswer(t *testing.T) {
	a, _ := StartAssessment("depression")
	a.Answer("first")
	a.Answer("second")
	if got := a.Previous(); got != "second" {
		t.Errorf("expected restored text 'second', got %q", got)
	}
	if got := a.Previous(); got != "first" {
		t.Errorf("expected restored text 'first', got %q", got)
	}
	a.Answer("edited")
	if a.Result().Responses["1"] != "edited" {
		t.Errorf("edit not stored: %v", a.Result().Responses)
	}
}

func TestAssessment_RequiredNotEnforced(t *testing.T) {
	a, _ := StartAssessment("anxiety")
	if !a.Current().Required {
		t.Fatal("first anxiety question is declared required")
	}
	a.Answer("")
	if a.Cursor() != 1 {
		t.Error("engine should advance on empty answer; the check belongs to the caller")
	}
}

func TestStartAssessment_UnknownIssue(t *testing.T) {
	if _, err := StartAssessment("boredom"); !errors.Is(err, ErrUnknownIssue) {
		t.Fatalf("expected ErrUnknownIssue, got %v", err)
	}
}

func TestAssessmentService_Flow(t *testing.T) {
	g := NewPlanGenerator(func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) })
	svc := NewAssessmentService(zap.NewNop(), g)

	if _, err := svc.Current("u1"); !errors.Is(err, ErrNoActiveAssessment) {
		t.Fatalf("expected no active assessment, got %v", err)
	}
	view, err := svc.Start("u1", "sleep")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if view.IssueName != "Sleep Problems" || view.Total != 10 || view.Index != 0 {
		t.Errorf("unexpected view %+v", view)
	}

	for i := 0; i < 9; i++ {
		v, plan, err := svc.Answer("u1", "text")
		if err != nil || plan != nil {
			t.Fatalf("answer %d: plan=%v err=%v", i, plan, err)
		}
		if v.Index != i+1 {
			t.Fatalf("expected index %d, got %d", i+1, v.Index)
		}
	}
	back, err := svc.Previous("u1")
	if err != nil || back.Index != 8 || back.PreviousAnswer != "text" {
		t.Fatalf("previous: %+v err=%v", back, err)
	}
	svc.Answer("u1", "again")

	_, plan, err := svc.Answer("u1", "done")
	if err != nil || plan == nil {
		t.Fatalf("final answer should produce a plan, err=%v", err)
	}
	if plan.Recommendations[0].ModuleID != "sleep" {
		t.Errorf("unexpected first module %s", plan.Recommendations[0].ModuleID)
	}
	if _, err := svc.Current("u1"); !errors.Is(err, ErrNoActiveAssessment) {
		t.Error("assessment state should be discarded after completion")
	}

	pending, err := svc.PendingPlan("u1")
	if err != nil || pending.ID != plan.ID {
		t.Fatalf("pending plan: %+v err=%v", pending, err)
	}
	svc.DiscardPlan("u1")
	if _, err := svc.PendingPlan("u1"); !errors.Is(err, ErrNoPendingPlan) {
		t.Error("discarded plan should be gone")
	}
}

func TestAssessmentService_UsersIsolated(t *testing.T) {
	svc := NewAssessmentService(zap.NewNop(), NewPlanGenerator(nil))
	svc.Start("a", "anxiety")
	svc.Start("b", "addiction")
	svc.Answer("a", "x")

	vb, _ := svc.Current("b")
	if vb.Index != 0 || vb.IssueID != "addiction" {
		t.Errorf("user b affected by user a: %+v", vb)
	}
	svc.Cancel("a")
	if _, err := svc.Current("a"); !errors.Is(err, ErrNoActiveAssessment) {
		t.Error("cancel should drop the assessment")
	}
}
