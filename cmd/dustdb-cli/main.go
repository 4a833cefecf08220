// Command dustdb-cli is a one-shot front-end over the storage engine: it
// performs a single create, read, update or delete against the configured
// storage root and prints "OK,<value>" or "ERR,<message>" to stdout. It
// shares the DUST_* environment configuration with the daemon but speaks no
// network protocol.
package main

import (
	"fmt"
	"os"

	"github.com/dustlabs/dustdb"
	"github.com/dustlabs/dustdb/protocol"
)

const usage = `usage:
  dustdb-cli create <pile> <hex-data>
  dustdb-cli read   <pile> <id>
  dustdb-cli update <pile> <id> <hex-data>
  dustdb-cli delete <pile> <id>

Prints "OK,<value>" on success and "ERR,<message>" on failure.
Storage location comes from DUST_DATA_STORAGE_PATH and DUST_DATA_FMT.`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Printf("ERR,%s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := dustdb.ConfigFromEnv()
	if err != nil {
		return err
	}
	store := dustdb.NewStore(cfg)

	op := args[0]
	args = args[1:]

	switch op {
	case "create":
		if len(args) != 2 {
			return fmt.Errorf("create takes <pile> <hex-data>")
		}
		id, err := store.Create(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("OK,%s\n", id)

	case "read":
		if len(args) != 2 {
			return fmt.Errorf("read takes <pile> <id>")
		}
		content, err := store.Read(args[0], args[1])
		if err != nil {
			return err
		}
		// Hex keeps multi-line record bodies on one output line.
		fmt.Printf("OK,%s\n", protocol.Encode(content))

	case "update":
		if len(args) != 3 {
			return fmt.Errorf("update takes <pile> <id> <hex-data>")
		}
		return store.Update(args[0], args[1], args[2])

	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("delete takes <pile> <id>")
		}
		return store.Delete(args[0], args[1])

	default:
		return fmt.Errorf("unknown operation: %s", op)
	}

	return nil
}
