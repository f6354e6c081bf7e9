// Package diagnose classifies supervised-process output into advisory
// diagnostic events.
//
// A fixed, ordered list of signature rules is applied to each stderr
// record; the first matching rule wins, so at most one diagnostic is
// emitted per record. Rule order is significant and preserved exactly.
// Classification is purely advisory — it never mutates or suppresses the
// record it inspects.
package diagnose

import (
	"strings"

	"go.uber.org/zap"

	"github.com/launchforge/launchkit"
)

// Cause identifies the matched signature rule.
type Cause string

const (
	CauseMemory    Cause = "memory"
	CauseMainClass Cause = "main_class"
	CauseAuth      Cause = "auth"
	CauseDownload  Cause = "download"
	CauseToken     Cause = "token"
)

type rule struct {
	cause      Cause
	signatures []string
}

// rules in fixed priority order; earlier rules shadow later ones.
// Signatures are matched as lowercase substrings.
var rules = []rule{
	{CauseMemory, []string{
		"java.lang.outofmemoryerror",
		"out of memory",
		"gc overhead limit exceeded",
	}},
	{CauseMainClass, []string{
		"could not find or load main class",
		"unable to initialize main class",
	}},
	{CauseAuth, []string{
		"failed to authenticate",
		"authentication servers are down",
		"invalid credentials",
	}},
	{CauseDownload, []string{
		"failed to download",
		"could not download",
	}},
	{CauseToken, []string{
		"invalid access token",
		"invalid token",
	}},
}

// Classifier applies the signature rules to output records.
type Classifier struct {
	log *zap.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger sets the classifier logger. Defaults to zap.NewNop().
func WithLogger(log *zap.Logger) Option {
	return func(c *Classifier) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a Classifier.
func New(opts ...Option) *Classifier {
	c := &Classifier{log: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Classify returns the cause of the first matching rule for a stderr
// record. Stdout records and non-matching records return ok=false.
func (c *Classifier) Classify(rec launchkit.OutputRecord) (Cause, bool) {
	if rec.Channel != launchkit.ChannelStderr {
		return "", false
	}
	line := strings.ToLower(rec.Text)
	for _, r := range rules {
		for _, sig := range r.signatures {
			if strings.Contains(line, sig) {
				return r.cause, true
			}
		}
	}
	return "", false
}

// Watch consumes a live output feed until it closes, invoking emit for
// each record that matches a rule. Run it concurrently with the
// supervised process's lifetime.
func (c *Classifier) Watch(feed <-chan launchkit.OutputRecord, emit func(launchkit.Diagnostic)) {
	for rec := range feed {
		cause, ok := c.Classify(rec)
		if !ok {
			continue
		}
		c.log.Debug("diagnostic matched",
			zap.String("cause", string(cause)),
			zap.String("text", rec.Text))
		if emit != nil {
			emit(launchkit.Diagnostic{Cause: string(cause), Record: rec})
		}
	}
}
