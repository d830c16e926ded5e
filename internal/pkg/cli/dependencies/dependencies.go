// Package dependencies provides the dependencies container for the CLI
// commands. Values are created lazily and cached for the command run.
package dependencies

import (
	"context"

	"go.uber.org/zap"

	"github.com/purpose-first/plans-as-code/internal/pkg/cli/options"
	"github.com/purpose-first/plans-as-code/internal/pkg/filesystem"
	"github.com/purpose-first/plans-as-code/internal/pkg/plan/store"
	"github.com/purpose-first/plans-as-code/internal/pkg/storage"
	"github.com/purpose-first/plans-as-code/internal/pkg/synthesis"
	"github.com/purpose-first/plans-as-code/internal/pkg/utils/errors"
)

type Container struct {
	ctx     context.Context
	logger  *zap.SugaredLogger
	fs      filesystem.Fs
	options *options.Options

	// Lazily initialized
	storage     *storage.Storage
	planStore   *store.Store
	synthesizer *synthesis.Synthesizer
}

func NewContainer(ctx context.Context, logger *zap.SugaredLogger, fs filesystem.Fs, opts *options.Options) *Container {
	return &Container{ctx: ctx, logger: logger, fs: fs, options: opts}
}

func (c *Container) Ctx() context.Context {
	return c.ctx
}

func (c *Container) Logger() *zap.SugaredLogger {
	return c.logger
}

func (c *Container) Fs() filesystem.Fs {
	return c.fs
}

func (c *Container) Options() *options.Options {
	return c.options
}

func (c *Container) Storage() *storage.Storage {
	if c.storage == nil {
		c.storage = storage.New(c)
	}
	return c.storage
}

// PlanStore returns the plan store loaded with the persisted collection.
// Loading normalizes the plans, missing ids and question ids are assigned.
func (c *Container) PlanStore() (*store.Store, error) {
	if c.planStore == nil {
		plans, err := c.Storage().LoadPlans()
		if err != nil {
			return nil, err
		}
		c.planStore = store.New(c)
		c.planStore.Load(plans)
	}
	return c.planStore, nil
}

// Synthesizer returns the contextual example synthesizer.
// The credential comes from the flag/ENV or from the credential slot.
func (c *Container) Synthesizer() (*synthesis.Synthesizer, error) {
	if c.synthesizer == nil {
		raw := c.options.Credential
		if raw == "" {
			var err error
			raw, err = c.Storage().LoadCredential()
			if err != nil {
				return nil, err
			}
		}
		if raw == "" {
			return nil, errors.Errorf(
				`missing credential, use the "credential set" command, the "--credential" flag or the ENV variable "%s"`,
				c.options.GetEnvName("credential"),
			)
		}
		credential, err := synthesis.ParseCredential(raw)
		if err != nil {
			return nil, err
		}
		c.synthesizer = synthesis.New(c, credential)
	}
	return c.synthesizer, nil
}
