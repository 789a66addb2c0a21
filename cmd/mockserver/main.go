package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/argentbank/argentctl/internal/logging"
	"github.com/argentbank/argentctl/internal/mockapi"
)

func main() {

	addr := flag.String("a", ":3001", "address to listen on")
	secret := flag.String("s", "dev-secret", "token signing secret")
	flag.Parse()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	srv, err := mockapi.NewServer([]byte(*secret), logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	log.Printf("mock backend listening on %s", *addr)
	if err := http.ListenAndServe(*addr, srv.Router()); err != nil {
		log.Printf("%v", err)
	}

}
