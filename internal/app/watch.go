package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
)

// Watch converts the input once and again after every change until ctx is
// cancelled. Re-runs always overwrite the previous output. A failed
// conversion is reported through OnError and does not stop watching.
func (s Service) Watch(ctx context.Context, req WatchRequest) error {
	if s.Watcher == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("file watcher is not configured")
	}
	kb, err := s.openKnowledgeBase(req.Convert.KnowledgeBase)
	if err != nil {
		return err
	}
	if kb != nil {
		defer kb.Close()
	}

	first := req.Convert
	result, err := s.convert(ctx, first, kb)
	if err != nil {
		return err
	}
	if req.OnResult != nil {
		req.OnResult(result)
	}

	again := req.Convert
	again.Overwrite = true
	again.Output = result.Output
	return s.Watcher.Watch(ctx, req.Convert.Input, func(ctx context.Context) error {
		result, err := s.convert(ctx, again, kb)
		if err != nil {
			log.Ctx(ctx).Debug().Err(err).Str("input", again.Input).Msg("conversion failed while watching")
			if req.OnError != nil {
				req.OnError(err)
			}
			return nil
		}
		if req.OnResult != nil {
			req.OnResult(result)
		}
		return nil
	})
}
