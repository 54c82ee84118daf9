package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeDomainUndefined, "bound undefined for %s", "K2 complement")

	if err.Code != ErrCodeDomainUndefined {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeDomainUndefined)
	}

	if err.Message != "bound undefined for K2 complement" {
		t.Errorf("Message = %v, want %v", err.Message, "bound undefined for K2 complement")
	}

	expected := "DOMAIN_UNDEFINED: bound undefined for K2 complement"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("simplex: infeasible")
	err := Wrap(ErrCodeSolverUnavailable, cause, "lp relaxation failed")

	if err.Code != ErrCodeSolverUnavailable {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeSolverUnavailable)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeTimeout, "claw-free check exceeded budget")

	if !Is(err, ErrCodeTimeout) {
		t.Error("Is() = false, want true for matching code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is() = true, want false for different code")
	}
	if Is(errors.New("plain"), ErrCodeTimeout) {
		t.Error("Is() = true, want false for non-structured error")
	}
}

func TestSkippable(t *testing.T) {
	cases := []struct {
		code Code
		want bool
	}{
		{ErrCodeDomainUndefined, true},
		{ErrCodeSolverUnavailable, true},
		{ErrCodeTimeout, true},
		{ErrCodeInvalidGraph, false},
		{ErrCodeInternal, false},
	}

	for _, tc := range cases {
		err := New(tc.code, "msg")
		if got := Skippable(err); got != tc.want {
			t.Errorf("Skippable(%s) = %v, want %v", tc.code, got, tc.want)
		}
	}

	if Skippable(nil) {
		t.Error("Skippable(nil) = true, want false")
	}
	if Skippable(errors.New("plain")) {
		t.Error("Skippable(plain) = true, want false")
	}
}

func TestGetCode(t *testing.T) {
	err := New(ErrCodeInvalidGraph, "edge references missing vertex")
	if got := GetCode(err); got != ErrCodeInvalidGraph {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidGraph)
	}

	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidInput, "unreadable graph6 header")
	if got := UserMessage(err); got != "unreadable graph6 header" {
		t.Errorf("UserMessage() = %v, want message without code", got)
	}

	plain := errors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %v, want %v", got, "plain failure")
	}
}
