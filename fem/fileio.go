// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// SaveSnapshot saves snapshot to a file which name is set with the output index
func SaveSnapshot(s *Snapshot, dirout, enctype string, verbose bool) (err error) {
	var buf bytes.Buffer
	enc := GetEncoder(&buf, enctype)
	err = enc.Encode(s)
	if err != nil {
		return chk.Err("cannot encode snapshot @ t=%g\n%v", s.Time, err)
	}
	return save_file(out_snap_path(dirout, s.Name, enctype, s.Region, s.Index), &buf, verbose)
}

// ReadSnapshot reads a snapshot from a file which name is set with the output index
func ReadSnapshot(dirout, key, enctype string, region, index int) (s *Snapshot, err error) {
	fil, err := os.Open(out_snap_path(dirout, key, enctype, region, index))
	if err != nil {
		return
	}
	defer fil.Close()
	s = new(Snapshot)
	err = GetDecoder(fil, enctype).Decode(s)
	if err != nil {
		return nil, chk.Err("cannot decode snapshot %d of region %d\n%v", index, region, err)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func out_snap_path(dir, fnkey, enctype string, region, index int) string {
	return filepath.Join(dir, io.Sf("%s_r%d_%010d.%s", fnkey, region, index, enctype))
}

func out_sum_path(dir, fnkey, enctype string) string {
	return filepath.Join(dir, io.Sf("%s.sum", fnkey))
}

func save_file(filename string, buf *bytes.Buffer, verbose bool) (err error) {
	err = os.MkdirAll(filepath.Dir(filename), 0777)
	if err != nil {
		return chk.Err("cannot create directory for file %q\n%v", filename, err)
	}
	fil, err := os.Create(filename)
	if err != nil {
		return chk.Err("cannot create file %q\n%v", filename, err)
	}
	defer fil.Close()
	_, err = fil.Write(buf.Bytes())
	if err != nil {
		return chk.Err("cannot write file %q\n%v", filename, err)
	}
	if verbose {
		io.Pfblue2("file <%s> written\n", filename)
	}
	return
}
