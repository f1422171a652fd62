// Command mc3eclient is a demonstration MC protocol client: it dials a 3E-frame
// server and reads a handful of words, printing the result. As with mc3eserver,
// this is the external "demonstration CLI" collaborator spec.md §1 carves out of
// the core library, not part of it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/mc3e/go-mcprotocol/mcp"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:5007", "address to dial")
	device := flag.String("device", "D0", "device address to read")
	count := flag.Uint("count", 10, "number of words to read")
	keyence := flag.Bool("keyence", false, "use the Keyence KV address dialect")
	flag.Parse()

	dialect := mcp.DialectMitsubishi
	if *keyence {
		dialect = mcp.DialectKeyence
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mcp.Dial(ctx, *addr, mcp.WithDialect(dialect))
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer client.Close()

	values, err := client.ReadU16s(ctx, *device, uint32(*count))
	if err != nil {
		log.Fatalf("read: %v", err)
	}
	fmt.Printf("%s x%d: %v\n", *device, *count, values)
}
