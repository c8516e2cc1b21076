package neo4jdb

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// IsTransient reports whether a store error is worth retrying: the driver's
// own retryability signal, the Neo.TransientError code family, cluster
// routing hiccups, or a network timeout. Permanent failures such as
// constraint violations and malformed statements are never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if neo4j.IsRetryable(err) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne *neo4j.Neo4jError
	if errors.As(err, &ne) {
		switch {
		case strings.HasPrefix(ne.Code, "Neo.TransientError"),
			strings.Contains(ne.Code, "ServiceUnavailable"),
			strings.Contains(ne.Code, "SessionExpired"):
			return true
		}
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

func IsConstraintViolation(err error) bool {
	var ne *neo4j.Neo4jError
	if errors.As(err, &ne) {
		return strings.Contains(ne.Code, "ConstraintValidationFailed") ||
			strings.Contains(ne.Code, "ConstraintViolation")
	}
	return false
}

// IsSchemaExists reports whether a constraint/index creation collided with an
// already-existing equivalent rule. Callers treat that as success.
func IsSchemaExists(err error) bool {
	if err == nil {
		return false
	}
	var ne *neo4j.Neo4jError
	if errors.As(err, &ne) {
		switch {
		case strings.Contains(ne.Code, "EquivalentSchemaRuleAlreadyExists"),
			strings.Contains(ne.Code, "ConstraintAlreadyExists"),
			strings.Contains(ne.Code, "IndexAlreadyExists"):
			return true
		}
		return strings.Contains(strings.ToLower(ne.Msg), "already exists")
	}
	return strings.Contains(strings.ToLower(err.Error()), "already exists")
}

// IsUnsupportedAdmin reports whether the server rejected a database
// administration statement, which is how community edition answers
// CREATE DATABASE.
func IsUnsupportedAdmin(err error) bool {
	if err == nil {
		return false
	}
	var ne *neo4j.Neo4jError
	if errors.As(err, &ne) {
		if strings.Contains(ne.Code, "UnsupportedAdministrationCommand") ||
			strings.Contains(ne.Code, "NotSystemDatabase") {
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unsupported administration command") ||
		strings.Contains(msg, "administration command")
}

func JitterSleep(base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	j := 0.2
	delta := base.Seconds() * j
	low := base.Seconds() - delta
	high := base.Seconds() + delta
	if low < 0 {
		low = 0
	}
	v := low + rand.Float64()*(high-low)
	return time.Duration(v * float64(time.Second))
}
