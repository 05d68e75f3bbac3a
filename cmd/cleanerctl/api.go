package main

import (
	"encoding/json"
	"io/ioutil"
	stdlog "log"
	"net/http"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/mastercactapus/cleanerctl/command"
	"github.com/mastercactapus/cleanerctl/device"
)

type api struct {
	http.Handler
	conn   *device.Conn
	macros map[string][]command.Block
	sse    *sse.Server
}

func newAPI(conn *device.Conn, macros map[string][]command.Block) *api {
	r := mux.NewRouter()

	a := &api{
		Handler: r,
		conn:    conn,
		macros:  macros,
		sse: sse.NewServer(&sse.Options{
			Logger: stdlog.New(ioutil.Discard, "", 0),
		}),
	}

	r.HandleFunc("/api/command", a.command).Methods("POST")
	r.HandleFunc("/api/shutdown", a.shutdown).Methods("POST")
	r.HandleFunc("/api/macro/{name}", a.macro).Methods("POST")
	r.PathPrefix("/events/").Handler(a.sse)

	go func() {
		for stat := range conn.State() {
			data, err := json.Marshal(stat)
			if err != nil {
				log.Printf("ERROR: marshal json: %+v", err)
				continue
			}
			a.sse.SendMessage("/events/state", sse.SimpleMessage(string(data)))
		}
	}()
	go func() {
		for line := range conn.Lines() {
			log.Println("device:", line)
			a.sse.SendMessage("/events/log", sse.SimpleMessage(line))
		}
	}()

	return a
}

func (a *api) command(w http.ResponseWriter, req *http.Request) {
	data, err := ioutil.ReadAll(req.Body)
	if err != nil {
		return
	}

	blocks, err := command.Parse(string(data))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = a.conn.Run(blocks)
	if err != nil {
		log.Printf("ERROR: run: %+v", err)
		http.Error(w, err.Error(), 500)
		return
	}
}

func (a *api) macro(w http.ResponseWriter, req *http.Request) {
	name := mux.Vars(req)["name"]
	blocks, ok := a.macros[name]
	if !ok {
		http.Error(w, "unknown macro: "+name, http.StatusNotFound)
		return
	}

	err := a.conn.Run(blocks)
	if err != nil {
		log.Printf("ERROR: macro %s: %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
}

func (a *api) shutdown(w http.ResponseWriter, req *http.Request) {
	err := a.conn.Shutdown()
	if err != nil {
		log.Printf("ERROR: shutdown: %+v", err)
		http.Error(w, err.Error(), 500)
		return
	}
}
