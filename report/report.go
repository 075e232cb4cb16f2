// Package report encodes the result of a finished runoff and exports it
// to a file storage.
package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/candidatos-info/runoff/election"
	"github.com/candidatos-info/runoff/filestorage"
	"github.com/gocarina/gocsv"
	"github.com/matryer/try"
	log "github.com/sirupsen/logrus"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	maxAttempts = 5 // number of times to retry an upload
)

// Standing is the final position of one candidate
type Standing struct {
	Name         string `json:"name" csv:"name"`
	LastName     string `json:"last_name" csv:"last_name"`
	Constituency string `json:"constituency" csv:"constituency"`
	Votes        int    `json:"votes" csv:"votes"`
	Eligible     bool   `json:"eligible" csv:"eligible"`
	Winner       bool   `json:"winner" csv:"winner"`
}

// Report is the exported view of an election result
type Report struct {
	ElectionID string     `json:"election_id"`
	Rounds     int        `json:"rounds"`
	Decided    bool       `json:"decided"`
	Winners    []Standing `json:"winners"`
	Standings  []Standing `json:"standings"`
}

// New builds a report from a runoff result
func New(r election.Result) *Report {
	winners := make(map[election.CandidateID]bool, len(r.Winners))
	rep := &Report{
		ElectionID: r.ElectionID,
		Rounds:     r.Rounds,
		Decided:    r.Decided,
		Winners:    []Standing{},
		Standings:  []Standing{},
	}
	for _, c := range r.Winners {
		winners[c.ID] = true
		rep.Winners = append(rep.Winners, standing(c, true))
	}
	for _, c := range r.Standings {
		rep.Standings = append(rep.Standings, standing(c, winners[c.ID]))
	}
	return rep
}

func standing(c election.Candidate, winner bool) Standing {
	return Standing{
		Name:         c.Name,
		LastName:     c.LastName,
		Constituency: c.Constituency,
		Votes:        c.Votes,
		Eligible:     c.Eligible,
		Winner:       winner,
	}
}

// JSON encodes the report as indented JSON
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// CSV encodes the standings, one candidate per line
func (r *Report) CSV() ([]byte, error) {
	return gocsv.MarshalBytes(&r.Standings)
}

// Proto encodes the report as a google.protobuf.Struct
func (r *Report) Proto() ([]byte, error) {
	s, err := r.Struct()
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

// Struct returns the report as a google.protobuf.Struct
func (r *Report) Struct() (*structpb.Struct, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

// Export uploads the report as <id>.json, <id>.csv and <id>.pb and returns
// where each file was stored.
func Export(r *Report, storage filestorage.FileStorage, bucket string) ([]string, error) {
	encoders := []struct {
		ext    string
		encode func() ([]byte, error)
	}{
		{"json", r.JSON},
		{"csv", r.CSV},
		{"pb", r.Proto},
	}
	var locations []string
	for _, enc := range encoders {
		b, err := enc.encode()
		if err != nil {
			return locations, fmt.Errorf("failed to encode report as %s, error %w", enc.ext, err)
		}
		fileName := fmt.Sprintf("%s.%s", r.ElectionID, enc.ext)
		var location string
		err = try.Do(func(attempt int) (bool, error) {
			var err error
			location, err = storage.Upload(b, bucket, fileName)
			if err != nil && attempt < maxAttempts {
				time.Sleep(time.Duration(attempt) * 100 * time.Millisecond)
			}
			return attempt < maxAttempts, err
		})
		if err != nil {
			return locations, fmt.Errorf("failed to save report file [%s] on [%s], error %w", fileName, bucket, err)
		}
		log.WithFields(log.Fields{"election": r.ElectionID, "location": location}).Info("report saved")
		locations = append(locations, location)
	}
	return locations, nil
}
