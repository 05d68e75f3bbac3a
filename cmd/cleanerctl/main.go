package main

import (
	"bufio"
	"flag"
	"io"
	"net/http"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/mastercactapus/cleanerctl/bridge"
	"github.com/mastercactapus/cleanerctl/command"
	"github.com/mastercactapus/cleanerctl/device"
)

func main() {
	port := flag.String("port", "/dev/ttyUSB0", "Serial port the cleaner is attached to.")
	baud := flag.Int("baud", 115200, "Baud rate for the serial port.")
	bridgeURL := flag.String("bridge", "", "Websocket URL of a serial bridge to use instead of a local port.")
	addr := flag.String("addr", ":9092", "Address to bind the cleanerctl server to.")
	configFile := flag.String("config", "", "Path to a TOML config file.")
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalln("ERROR: load config:", err)
	}

	// flags given on the command line win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = *port
		case "baud":
			cfg.Baud = *baud
		case "bridge":
			cfg.Bridge = *bridgeURL
		}
	})

	var rw io.ReadWriter
	if cfg.Bridge != "" {
		rw = bridge.NewClient(cfg.Bridge)
	} else {
		rw, err = device.OpenPort(device.PortConfig{
			Name:        cfg.Port,
			Baud:        cfg.Baud,
			ReadTimeout: cfg.ReadTimeout,
		})
		if err != nil {
			log.Fatalln("ERROR: open port:", err)
		}
	}

	conn := device.NewConn(rw)
	defer conn.Close()

	api := newAPI(conn, cfg.Macros)
	go func() {
		err := http.ListenAndServe(*addr, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "*")
			log.Printf("%s %s - %s", req.Method, req.URL.Path, req.RemoteAddr)
			api.ServeHTTP(w, req)
		}))
		if err != nil {
			log.Fatal(err)
		}
	}()

	console(conn, cfg.Macros)
}

// console reads commands from stdin until EOF. "shutdown" sends the
// shutdown frame, "@name" runs a config macro, anything else is parsed
// and sent as command frames.
func console(conn *device.Conn, macros map[string][]command.Block) {
	scan := bufio.NewScanner(os.Stdin)
	for scan.Scan() {
		text := strings.TrimSpace(scan.Text())
		if text == "" {
			continue
		}
		if text == "shutdown" {
			if err := conn.Shutdown(); err != nil {
				log.Println("ERROR: shutdown:", err)
			}
			continue
		}
		if strings.HasPrefix(text, "@") {
			name := strings.TrimPrefix(text, "@")
			blocks, ok := macros[name]
			if !ok {
				log.Println("ERROR: unknown macro:", name)
				continue
			}
			if err := conn.Run(blocks); err != nil {
				log.Println("ERROR: macro:", err)
			}
			continue
		}
		blocks, err := command.Parse(text)
		if err != nil {
			log.Println("ERROR:", err)
			continue
		}
		if err = conn.Run(blocks); err != nil {
			log.Println("ERROR: send:", err)
		}
	}
}
