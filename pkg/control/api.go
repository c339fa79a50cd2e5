/*
   FluxDisk - floppy track codec
   Copyright (c) 2021, Alexander Vollschwitz

   This file is part of FluxDisk.

   FluxDisk is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   FluxDisk is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with FluxDisk. If not, see <http://www.gnu.org/licenses/>.
*/

package control

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/fluxdisk/pkg/disk"
	"github.com/xelalexv/fluxdisk/pkg/disk/base"
	"github.com/xelalexv/fluxdisk/pkg/disk/format"
	"github.com/xelalexv/fluxdisk/pkg/repo"
)

// upper limit for request bodies
const maxBodyLength = 16 << 20

//
type APIServer interface {
	Serve() error
	Stop() error
	Handler() http.Handler
}

// NewAPIServer creates the API server. repository is the base folder for
// loading captures by reference; when empty, loading by reference is disabled.
func NewAPIServer(addr, repository string) APIServer {
	return &api{address: addr, repository: repository}
}

//
type api struct {
	address    string
	repository string
	server     *http.Server
}

//
func (a *api) Handler() http.Handler {

	router := mux.NewRouter().StrictSlash(true)

	addRoute(router, "status", "GET", "/status", a.status)
	addRoute(router, "decode", "PUT", "/decode", a.decode)
	addRoute(router, "encode", "PUT", "/encode", a.encode)
	addRoute(router, "verify", "PUT", "/verify", a.verify)

	return router
}

//
func (a *api) Serve() error {

	addr := a.address
	if len(strings.Split(addr, ":")) < 2 {
		addr = fmt.Sprintf("%s:8888", a.address)
	}

	log.Infof("FluxDisk API starts listening on %s", addr)
	a.server = &http.Server{Addr: addr, Handler: a.Handler()}

	err := a.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

//
func (a *api) Stop() error {
	if a.server != nil {
		log.Info("API server stopping...")
		err := a.server.Shutdown(context.Background())
		a.server = nil
		return err
	}
	return nil
}

//
func addRoute(r *mux.Router, name, method, pattern string,
	handler http.HandlerFunc) {
	r.Methods(method).
		Path(pattern).
		Name(name).
		Handler(requestLogger(handler, name))
}

//
func requestLogger(inner http.Handler, name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		log.WithFields(log.Fields{
			"remote": r.RemoteAddr,
			"method": r.Method,
			"path":   r.RequestURI,
		}).Debugf("API BEGIN | %s", name)

		start := time.Now()
		inner.ServeHTTP(w, r)

		log.WithFields(log.Fields{
			"remote":   r.RemoteAddr,
			"method":   r.Method,
			"path":     r.RequestURI,
			"duration": time.Since(start),
		}).Debugf("API END   | %s", name)
	})
}

// getInput returns the request body, or the file referenced by the ref
// parameter.
func (a *api) getInput(w http.ResponseWriter, req *http.Request) io.ReadCloser {

	ref, err := getArg(req, "ref")
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return nil
	}

	if ref == "" {
		return io.NopCloser(io.LimitReader(req.Body, maxBodyLength))
	}

	if !repo.IsReference(ref) {
		handleError(fmt.Errorf("invalid reference: %s", ref),
			http.StatusUnprocessableEntity, w)
		return nil
	}

	rc, err := repo.Resolve(ref, a.repository)
	if handleError(err, http.StatusNotAcceptable, w) {
		return nil
	}
	return rc
}

//
func getHandler(w http.ResponseWriter, req *http.Request) base.Handler {

	typ, err := getArg(req, "type")
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return nil
	}
	if typ == "" {
		typ = base.LEMMINGS.String()
	}

	fill, err := getArg(req, "fill")
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return nil
	}

	tt := base.GetTrackType(typ)
	if tt == base.UNKNOWN {
		handleError(fmt.Errorf("unknown track type: %s", typ),
			http.StatusUnprocessableEntity, w)
		return nil
	}

	h, err := disk.NewHandlerWithFill(tt, []byte(fill))
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return nil
	}
	return h
}

//
func getFormat(w http.ResponseWriter, req *http.Request) format.ReaderWriter {
	arg, err := getArg(req, "format")
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return nil
	}
	if arg == "" {
		arg = "trk"
	}
	ret, err := format.NewFormat(arg)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return nil
	}
	return ret
}

//
func isFlagSet(req *http.Request, flag string) bool {
	arg, _ := getArg(req, flag)
	return arg == "true"
}

//
func getArg(req *http.Request, arg string) (string, error) {
	ret := req.URL.Query().Get(arg)
	if ret != "" {
		return url.QueryUnescape(ret)
	}
	return ret, nil
}

// getIntArg returns the integer argument, or def if it is not present
func getIntArg(req *http.Request, arg string, def int) (int, error) {
	if val, err := getArg(req, arg); err != nil {
		return -1, err
	} else if val == "" {
		return def, nil
	} else {
		if ret, err := strconv.Atoi(val); err != nil {
			return -1, fmt.Errorf("invalid value for %s: %v", arg, err)
		} else {
			return ret, nil
		}
	}
}

//
func setHeaders(h http.Header, json bool) {
	if json {
		h.Set("Content-Type", "application/json; charset=UTF-8")
	} else {
		h.Set("Content-Type", "text/plain; charset=UTF-8")
	}
}

//
func handleError(e error, statusCode int, w http.ResponseWriter) bool {

	if e == nil {
		return false
	}

	log.Errorf("%v", e)

	setHeaders(w.Header(), false)
	w.WriteHeader(statusCode)
	if _, err := w.Write([]byte(fmt.Sprintf("%v\n", e))); err != nil {
		log.Errorf("problem writing error: %v", err)
	}

	return true
}

//
func sendReply(body []byte, statusCode int, w http.ResponseWriter) {
	setHeaders(w.Header(), false)
	w.WriteHeader(statusCode)
	if _, err := fmt.Fprintf(w, "%s\n", body); err != nil {
		log.Errorf("problem sending reply: %v", err)
	}
}

//
func sendBinaryReply(body []byte, statusCode int, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		log.Errorf("problem sending reply: %v", err)
	}
}

//
func sendJSONReply(obj interface{}, statusCode int, w http.ResponseWriter) {
	setHeaders(w.Header(), true)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(obj); err != nil {
		log.Errorf("problem writing error: %v", err)
	}
}

//
func wantsJSON(req *http.Request) bool {
	return strings.HasPrefix(req.Header.Get("Accept"), "application/json")
}
