// Package catalog holds the declarative classification tables: the pitfall
// pattern catalog and the topic keyword catalog. Both are plain immutable
// data, compiled into matchers elsewhere, so the rules can be audited and
// tested independent of the matching engine.
package catalog

import "github.com/stacklens/stacklens/internal/domain"

// Patterns returns the built-in pitfall pattern catalog in declaration
// order. Matchers are lower-case; "*" is a wildcard gap. Declaration order
// is the tie-break order for ranked results, so it is part of the contract.
func Patterns() []domain.Pattern {
	return []domain.Pattern{
		{
			Name:     "resource_exhaustion",
			Category: domain.CategoryRootCause,
			Matchers: []string{
				// memory: heap, metaspace, native
				"out of memory", "outofmemoryerror", "oome",
				"heap space", "heap*full",
				"metaspace",
				"direct buffer", "off-heap",
				"malloc",
				"memory*exhaust",
				"run*out of memory",
				"using more and more memory",
				"drain*memory",
				"high*memory", "high*usage",
				"store*to memory",
				// connection pools and network limits
				"pool*empty",
				"pool*exhaust",
				"connection*limit",
				"max*connection",
				"active connection",
				"unable to obtain*connection",
				"connection refused",
				"tcp connection",
				// thread limits
				"pthread_create",
				"failed to start*thread",
				"native thread",
				"too many*threads",
				"thread*limit",
				// other OS resources
				"os limit",
				"file descriptor", "open files",
				"capacity",
				"no space left",
			},
		},
		{
			Name:     "visibility_issue",
			Category: domain.CategoryRootCause,
			Matchers: []string{
				"volatile",
				"happens-before", "hb ",
				"memory model", "jmm",
				"memory barrier", "store fence", "load fence",
				"atomic reference",
				"changes*not reflect",
				"stale data", "stale value",
				"cpu cache", "l1 cache", "l2 cache",
				"shared variable",
				"loops forever",
				"mdc*lost", "mdc*empty",
				"trace*lost", "trace*null",
				"context*propagat",
				"thread local*lost",
			},
		},
		{
			Name:     "thread_starvation",
			Category: domain.CategoryRootCause,
			Matchers: []string{
				"blocked thread",
				"thread*blocked",
				"blocking operation",
				"indefinite",
				"unresponsive",
				"stuck",
				"waiting for lock",
				"waiting for connection",
				"waiting for db",
				"pool*exhaust",
				"queue*full",
				"locksupport.park",
				"thread.state.waiting",
				"thread.state.blocked",
				"starvation",
				"thread contention",
				"overwhelm",
			},
		},
		{
			Name:     "race_condition",
			Category: domain.CategoryRootCause,
			Matchers: []string{
				"race condition", "race issue", "data race",
				"racing",
				"check-then-act",
				"read-modify-write",
				"atomicity", "not atomic",
				"singleton",
				"lazy init",
				// heisenbug fingerprints: behaviour changes under debug/timing
				"works*debug",
				"fail*run",
				"timing issue", "timing dependency",
				"sleep",
				"flaky", "flakiness",
				"non-deterministic",
				"sometimes",
				"occasionally",
				"intermittently",
				"spasmodically",
				"randomly",
				"not always",
				"duplicate",
				"ordering guarantee",
				"out of order",
			},
		},
		{
			Name:     "deadlock",
			Category: domain.CategoryRootCause,
			Matchers: []string{
				"deadlock", "dead-lock",
				"dead lock",
				"livelock",
				"circular dependency",
				"dining philosophers",
				"thread*stuck", "thread*hang", "application*hang",
				"app*freeze",
				"indefinite*wait",
				"stuck in waiting",
				"indefinite",
				"waits forever",
				"wait*lock",
				"lock*timeout",
				"unable to acquire lock",
				"blocked thread",
				"join*deadlock",
			},
		},
		{
			Name:     "configuration_issue",
			Category: domain.CategoryRootCause,
			Matchers: []string{
				"default*configuration",
				"fail*deserialize",
				"default is false",
				"default configuration",
				"failed to bind properties",
				"invalid*config",
				"invalid_redirect_uri",
				"unrecognized vm option",
				"maxpermsize",
				"support this anymore",
				"configured*duration",
				"configured*time",
				"misconfigured",
			},
		},
		{
			Name:     "data_loss",
			Category: domain.CategorySymptom,
			Matchers: []string{
				"data loss", "message*lost", "packet*loss", "lost update",
				"never reach",
				"not receiv",
				"not consum",
				"empty result",
				"data*loss", "data*lost",
				"field*missing",
				"record*missing",
				"context*lost",
				"trace*null",
				"span*null",
				"header*null",
				"header*missing",
				"mdc",
				"identity*not appear",
				"not propagat",
				"disconnect*before",
				"premature close",
				"swallow",
				"suppress",
				"not report",
				"not log",
				"fail silently",
				"no error log",
			},
		},
		{
			Name:     "data_inconsistency",
			Category: domain.CategorySymptom,
			Matchers: []string{
				"data inconsistency",
				"inconsistency",
				"inconsistent",
				"integrity violation",
				"checksum fail",
				"duplicate",
				"double entry",
				"processed twice",
				"mismatch",
				"value*different",
				"not match",
				"out of sync",
				"not reflect",
				"never update",
				"not update",
				"old version",
				"stale data",
				"stale entry",
				"cache*not removed",
				"out of order",
				"lose*order",
				"wrong order",
				"not see*value",
				"visibility",
				"did not receive*notification",
			},
		},
		{
			Name:     "performance_issue",
			Category: domain.CategorySymptom,
			Matchers: []string{
				"high latency", "response time",
				"bottleneck",
				"too slow",
				"very slow",
				"taking long time",
				"runs long",
				"timeout", "timed out",
				"jitter",
				"high cpu", "cpu usage",
				"gc pressure", "garbage collection", "stop-the-world",
				"low rate",
			},
		},
		{Name: "InterruptedException", Category: domain.CategoryException, Matchers: []string{"interruptedexception"}},
		{Name: "IOException", Category: domain.CategoryException, Matchers: []string{"ioexception"}},
		{Name: "ConcurrentModificationException", Category: domain.CategoryException, Matchers: []string{"concurrentmodificationexception"}},
		{Name: "NullPointerException", Category: domain.CategoryException, Matchers: []string{"nullpointerexception"}},
		{Name: "SSLHandshakeException", Category: domain.CategoryException, Matchers: []string{"sslhandshakeexception"}},
		{Name: "IllegalStateException", Category: domain.CategoryException, Matchers: []string{"illegalstateexception"}},
	}
}
