package hooks

import (
	"fmt"
	"io"
	"log"
	"os"

	"headroom/internal/catalog"
	"headroom/internal/config"
)

// Handle reads HookInput from the given reader, dispatches on the event
// argument, and writes output to stdout. Failures degrade: a hook
// invocation never exits non-zero.
func Handle(event string, stdin io.Reader) {
	input, err := ReadInput(stdin)
	if err != nil {
		if event == "start" {
			WriteSessionStartOutput(os.Stdout, "")
			return
		}
		ExitError(err)
		return
	}

	switch event {
	case "start":
		handleStart(input, os.Stdout)
	case "submit":
		handleSubmit(input, os.Stdout)
	default:
		ExitError(fmt.Errorf("unknown hook event: %s", event))
	}
}

// env loads the workspace, config, and catalog a handler needs. The
// returned error is the only fatal-for-the-turn case: no usable
// configuration.
type hookEnv struct {
	cfg       config.Config
	workspace string
	docsRoot  string
	catalog   *catalog.Catalog
	instance  string
}

func loadEnv() (*hookEnv, error) {
	cfg, ws, err := config.Resolve()
	if err != nil {
		return nil, err
	}

	docsRoot, err := cfg.DocsRoot()
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(config.CatalogPath(ws))
	if err != nil {
		return nil, err
	}
	if added := cat.DiscoverTasks(docsRoot); added > 0 {
		log.Printf("headroom: discovered %d task fragment(s)", added)
	}

	return &hookEnv{
		cfg:       cfg,
		workspace: ws,
		docsRoot:  docsRoot,
		catalog:   cat,
		instance:  config.InstanceID(),
	}, nil
}
