package neo4jdb

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

func TestIsTransient(t *testing.T) {
	transient := &neo4j.Neo4jError{
		Code: "Neo.TransientError.General.MemoryPoolOutOfMemoryError",
		Msg:  "memory pool exhausted",
	}
	if !IsTransient(transient) {
		t.Fatalf("transient code family should classify as transient")
	}
	if !IsTransient(fmt.Errorf("load batch: %w", transient)) {
		t.Fatalf("wrapped transient error should classify as transient")
	}

	unavailable := &neo4j.Neo4jError{
		Code: "Neo.DatabaseError.General.ServiceUnavailable",
		Msg:  "server restarting",
	}
	if !IsTransient(unavailable) {
		t.Fatalf("service unavailable should classify as transient")
	}

	constraint := &neo4j.Neo4jError{
		Code: "Neo.ClientError.Schema.ConstraintValidationFailed",
		Msg:  "node already exists",
	}
	if IsTransient(constraint) {
		t.Fatalf("constraint violation must never classify as transient")
	}

	syntax := &neo4j.Neo4jError{
		Code: "Neo.ClientError.Statement.SyntaxError",
		Msg:  "invalid input",
	}
	if IsTransient(syntax) {
		t.Fatalf("syntax error must never classify as transient")
	}

	if IsTransient(nil) {
		t.Fatalf("nil error is not transient")
	}
}

func TestIsConstraintViolation(t *testing.T) {
	constraint := &neo4j.Neo4jError{
		Code: "Neo.ClientError.Schema.ConstraintValidationFailed",
		Msg:  "node already exists with label Provider",
	}
	if !IsConstraintViolation(constraint) {
		t.Fatalf("constraint code should classify as constraint violation")
	}
	if !IsConstraintViolation(fmt.Errorf("batch 2: %w", constraint)) {
		t.Fatalf("wrapped constraint error should classify")
	}
	if IsConstraintViolation(errors.New("connection reset")) {
		t.Fatalf("plain error should not classify as constraint violation")
	}
}

func TestIsSchemaExists(t *testing.T) {
	equivalent := &neo4j.Neo4jError{
		Code: "Neo.ClientError.Schema.EquivalentSchemaRuleAlreadyExists",
		Msg:  "an equivalent constraint already exists",
	}
	if !IsSchemaExists(equivalent) {
		t.Fatalf("equivalent schema rule should classify as already existing")
	}
	byMessage := &neo4j.Neo4jError{
		Code: "Neo.ClientError.Schema.IndexWithNameAlreadyExists",
		Msg:  "there already exists an index called provider_id_unique",
	}
	if !IsSchemaExists(byMessage) {
		t.Fatalf("index-exists variant should classify as already existing")
	}
	if IsSchemaExists(errors.New("connection refused")) {
		t.Fatalf("unrelated error should not classify as already existing")
	}
	if IsSchemaExists(nil) {
		t.Fatalf("nil error should not classify as already existing")
	}
}

func TestIsUnsupportedAdmin(t *testing.T) {
	unsupported := &neo4j.Neo4jError{
		Code: "Neo.ClientError.Statement.UnsupportedAdministrationCommand",
		Msg:  "unsupported administration command: CREATE DATABASE",
	}
	if !IsUnsupportedAdmin(unsupported) {
		t.Fatalf("community edition rejection should classify as unsupported admin")
	}
	if IsUnsupportedAdmin(errors.New("connection refused")) {
		t.Fatalf("connectivity error should not classify as unsupported admin")
	}
}

func TestJitterSleepStaysNearBase(t *testing.T) {
	base := time.Second
	for i := 0; i < 100; i++ {
		got := JitterSleep(base)
		if got < 799*time.Millisecond || got > 1201*time.Millisecond {
			t.Fatalf("jitter out of range: base=%v got=%v", base, got)
		}
	}
	if got := JitterSleep(0); got != 0 {
		t.Fatalf("zero base: want=0 got=%v", got)
	}
}
