package report

import (
	"errors"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/candidatos-info/runoff/election"
	"github.com/candidatos-info/runoff/filestorage"
	"github.com/matryer/is"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

func result() election.Result {
	alice := election.Candidate{ID: 0, Name: "Alice", LastName: "Smith", Constituency: "O1", Votes: 2, Eligible: true}
	bob := election.Candidate{ID: 1, Name: "Bob", LastName: "Jones", Constituency: "O1", Votes: 1, Eligible: true}
	return election.Result{
		ElectionID: "e1",
		Rounds:     2,
		Decided:    true,
		Winners:    []election.Candidate{alice},
		Standings:  []election.Candidate{alice, bob},
	}
}

func TestNew(t *testing.T) {
	is := is.New(t)
	r := New(result())
	is.Equal(r.ElectionID, "e1")
	is.Equal(len(r.Winners), 1)
	is.True(r.Standings[0].Winner)
	is.True(!r.Standings[1].Winner)
}

func TestCSV(t *testing.T) {
	b, err := New(result()).CSV()
	if err != nil {
		t.Fatalf("expected err nil when encoding csv, got %q", err)
	}
	want := "name,last_name,constituency,votes,eligible,winner\nAlice,Smith,O1,2,true,true\nBob,Jones,O1,1,true,false\n"
	if string(b) != want {
		t.Errorf("want %q, got %q", want, string(b))
	}
}

func TestProto(t *testing.T) {
	is := is.New(t)
	b, err := New(result()).Proto()
	is.NoErr(err)
	var s structpb.Struct
	is.NoErr(proto.Unmarshal(b, &s))
	is.Equal(s.Fields["election_id"].GetStringValue(), "e1")
	is.Equal(s.Fields["rounds"].GetNumberValue(), float64(2))
	winners := s.Fields["winners"].GetListValue().GetValues()
	is.Equal(len(winners), 1)
	is.Equal(winners[0].GetStructValue().Fields["name"].GetStringValue(), "Alice")
}

func TestExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	locations, err := Export(New(result()), filestorage.NewLocalStorage(), dir)
	if err != nil {
		t.Fatalf("expected err nil when exporting, got %q", err)
	}
	if len(locations) != 3 {
		t.Fatalf("want 3 files, got %d", len(locations))
	}
	b, err := ioutil.ReadFile(filepath.Join(dir, "e1.json"))
	if err != nil {
		t.Fatalf("expected err nil when reading json report, got %q", err)
	}
	if !strings.Contains(string(b), `"decided": true`) {
		t.Errorf("expected decided flag in json report, got %s", string(b))
	}
}

type brokenStorage struct{ calls int }

func (b *brokenStorage) Upload(content []byte, bucket, fileName string) (string, error) {
	b.calls++
	return "", errors.New("unavailable")
}

func TestExportRetries(t *testing.T) {
	s := &brokenStorage{}
	if _, err := Export(New(result()), s, "bucket"); err == nil {
		t.Errorf("expected export to fail, got nil")
	}
	if s.calls != maxAttempts {
		t.Errorf("want %d attempts, got %d", maxAttempts, s.calls)
	}
}
