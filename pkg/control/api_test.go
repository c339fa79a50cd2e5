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
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xelalexv/fluxdisk/pkg/disk/format"
	"github.com/xelalexv/fluxdisk/pkg/disk/lemmings"
)

//
func call(t *testing.T, h http.Handler, method, target string, body []byte,
	accept string) *httptest.ResponseRecorder {

	var in io.Reader
	if body != nil {
		in = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, in)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

//
func trkFile(t *testing.T, nr int) []byte {
	tr := lemmings.NewTrack(nr)
	for ix := range tr.Data {
		tr.Data[ix] = byte(ix * 3)
	}
	var out bytes.Buffer
	require.NoError(t, format.NewTRK().Write(tr, &out))
	return out.Bytes()
}

//
func bitsFile(t *testing.T, nr int) []byte {
	tr, err := format.NewTRK().Read(bytes.NewReader(trkFile(t, nr)), true)
	require.NoError(t, err)
	img, err := format.EncodeBits(lemmings.NewHandler(), tr)
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, format.WriteBits(img, &out))
	return out.Bytes()
}

func TestStatus(t *testing.T) {

	h := NewAPIServer("", "").Handler()

	rec := call(t, h, "GET", "/status", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "lemmings")
	assert.Contains(t, rec.Body.String(), "trk, img")

	rec = call(t, h, "GET", "/status", nil, "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	var stat Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stat))
	assert.Equal(t, []string{"lemmings"}, stat.TrackTypes)
	assert.Equal(t, format.Formats(), stat.Formats)

	rec = call(t, h, "PUT", "/status", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestEncodeDecode(t *testing.T) {

	h := NewAPIServer("", "").Handler()

	rec := call(t, h, "PUT", "/encode", trkFile(t, 7), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, bitsFile(t, 7), rec.Body.Bytes())

	img, err := format.ReadBits(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, uint32(lemmings.DefaultTrackBits), img.TrackBits)

	rec = call(t, h, "PUT", "/decode?track=7", bitsFile(t, 7), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, trkFile(t, 7), rec.Body.Bytes())

	rec = call(t, h, "PUT", "/decode?track=7&format=img", bitsFile(t, 7), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, trkFile(t, 7)[format.TRKHeaderLength:], rec.Body.Bytes())

	rec = call(t, h, "PUT", "/decode?track=7&type=Lemmings", bitsFile(t, 7),
		"application/json")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var info Track
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "lemmings", info.Type)
	assert.Equal(t, 7, info.Number)
	assert.Equal(t, "++++++", info.Valid)
	assert.Equal(t, 6, info.ValidCount)
	assert.Equal(t, uint32(lemmings.DefaultDataBitOffset), info.DataBitOffset)
}

func TestEncodeOptions(t *testing.T) {

	h := NewAPIServer("", "").Handler()
	img := trkFile(t, 0)[format.TRKHeaderLength:]

	rec := call(t, h, "PUT", "/encode?format=img&bits=100200", img, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	bits, err := format.ReadBits(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, uint32(100200), bits.TrackBits)

	rec = call(t, h, "PUT", "/encode?format=img", img[:100], "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = call(t, h, "PUT", "/encode?format=img&lenient=true", img[:100], "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// track too long for the payload
	rec = call(t, h, "PUT", "/encode?format=img&bits=1000", img, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestVerify(t *testing.T) {

	h := NewAPIServer("", "").Handler()

	rec := call(t, h, "PUT", "/verify", trkFile(t, 2), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "track 2 verified")

	rec = call(t, h, "PUT", "/verify?format=dsk", trkFile(t, 2), "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDecodeErrors(t *testing.T) {

	h := NewAPIServer("", "").Handler()

	tests := []struct {
		name   string
		target string
		body   []byte
		want   int
	}{
		{"garbage", "/decode", []byte("garbage"), http.StatusUnprocessableEntity},
		{"bad track", "/decode?track=x", bitsFile(t, 0),
			http.StatusUnprocessableEntity},
		{"bad type", "/decode?type=amigados", bitsFile(t, 0),
			http.StatusUnprocessableEntity},
		{"bad format", "/decode?format=mdr", bitsFile(t, 0),
			http.StatusUnprocessableEntity},
		{"bad revolutions", "/decode?revolutions=many", bitsFile(t, 0),
			http.StatusUnprocessableEntity},
		{"too many revolutions", "/decode?revolutions=1000000000",
			bitsFile(t, 0), http.StatusUnprocessableEntity},
		{"negative revolutions", "/decode?revolutions=-1", bitsFile(t, 0),
			http.StatusUnprocessableEntity},
		{"no repository", "/decode?ref=repo://x.bits", nil,
			http.StatusNotAcceptable},
		{"bad reference", "/decode?ref=file:///x.bits", nil,
			http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, h, "PUT", tt.target, tt.body, "")
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestDecodeNoData(t *testing.T) {

	h := NewAPIServer("", "").Handler()

	img := &format.BitsImage{
		TrackBits:   lemmings.DefaultTrackBits,
		Revolutions: 1,
		Data:        make([]byte, (lemmings.DefaultTrackBits+7)/8),
	}
	var out bytes.Buffer
	require.NoError(t, format.WriteBits(img, &out))

	rec := call(t, h, "PUT", "/decode?track=4", out.Bytes(), "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "track 4")

	// the largest revolution count still only goes around the capture twice
	rec = call(t, h, "PUT", "/decode?track=4&revolutions=65535", out.Bytes(), "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "track 4")
}

func TestDecodeFromRepository(t *testing.T) {

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "t9.bits"), bitsFile(t, 9), 0644))

	h := NewAPIServer("", dir).Handler()

	rec := call(t, h, "PUT", "/decode?track=9&ref=repo://t9.bits", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, trkFile(t, 9), rec.Body.Bytes())

	rec = call(t, h, "PUT", "/decode?ref=repo://../t9.bits", nil, "")
	assert.Equal(t, http.StatusNotAcceptable, rec.Code)
}
