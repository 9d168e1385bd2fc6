package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"election-results/core/utils"
	"election-results/feature/races"
	"election-results/feature/races/models"
)

// TimestampLayout is the per-run suffix of exported file names.
const TimestampLayout = "20060102_150405"

// TimeLayout renders timestamps in CSV cells.
const TimeLayout = "2006-01-02T15:04:05.999999-07:00"

// FileType names an exported file family. It prefixes the file name.
type FileType string

const (
	FilePresident FileType = "president"
	FileSenate    FileType = "senate"
	FileHouse     FileType = "house"
	FileGovernor  FileType = "governor"
	FileBallot    FileType = "ballot"
)

// FileTypes lists the base file families in write order.
var FileTypes = []FileType{FilePresident, FileSenate, FileHouse, FileGovernor, FileBallot}

var (
	personHeaders = []string{
		"race_id", "state_postal", "state_name", "race_call_status", "last_updated",
		"precincts_reporting", "precincts_total", "precincts_reporting_pct",
		"expected_vote_pct", "total_votes", "candidate_id", "first_name", "last_name",
		"party", "incumbent", "vote_count", "vote_pct",
	}
	congressHeaders = []string{
		"race_id", "state_postal", "state_name", "office_id", "seat_name", "seat_num",
		"race_call_status", "last_updated", "precincts_reporting", "precincts_total",
		"precincts_reporting_pct", "expected_vote_pct", "total_votes", "candidate_id",
		"first_name", "last_name", "party", "incumbent", "vote_count", "vote_pct",
	}
	ballotHeaders = []string{
		"race_id", "state_postal", "state_name", "description", "category", "summary",
		"race_call_status", "last_updated", "precincts_reporting", "precincts_total",
		"precincts_reporting_pct", "expected_vote_pct", "total_votes", "candidate_id",
		"option_name", "vote_count", "vote_pct",
	}
	// DetailHeaders matches the county_results table.
	DetailHeaders = []string{
		"race_id", "state_postal", "county_name", "county_fips", "county_id",
		"precincts_reporting", "precincts_total", "precincts_reporting_pct",
		"expected_vote_pct", "total_votes", "registered_voters", "last_updated",
		"candidate_id", "first_name", "last_name", "option_name", "party",
		"vote_count", "vote_pct",
	}
)

// Headers returns the column set of a base file family.
func Headers(ft FileType) []string {
	switch ft {
	case FileSenate, FileHouse:
		return congressHeaders
	case FileBallot:
		return ballotHeaders
	default:
		return personHeaders
	}
}

// WrittenFile describes one exported CSV.
type WrittenFile struct {
	Type FileType `json:"type"`
	Path string   `json:"path"`
	Rows int      `json:"rows"`
}

// Timestamp formats the run timestamp used in file names.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Row is one CSV record keyed by column name.
type Row map[string]string

// Rows flattens a result set into one row set per file family.
// Candidate races only export person candidates and the Other category is not exported.
func Rows(rs *races.ResultSet) map[FileType][]Row {
	out := make(map[FileType][]Row)
	for _, cat := range rs.Categories() {
		for _, record := range rs.Races(cat) {
			switch r := record.(type) {
			case *models.BallotMeasure:
				out[FileBallot] = append(out[FileBallot], measureRows(r)...)
			case *models.CandidateRace:
				ft, ok := candidateFileType(r.OfficeID)
				if !ok {
					continue
				}
				out[ft] = append(out[ft], candidateRows(r, ft)...)
			}
		}
	}
	return out
}

func candidateFileType(officeID string) (FileType, bool) {
	switch officeID {
	case models.OfficePresident:
		return FilePresident, true
	case models.OfficeSenate:
		return FileSenate, true
	case models.OfficeHouse:
		return FileHouse, true
	case models.OfficeGovernor:
		return FileGovernor, true
	}
	return "", false
}

func baseRow(r *models.RaceBase) Row {
	return Row{
		"race_id":                 r.RaceID,
		"state_postal":            r.StatePostal,
		"state_name":              r.StateName,
		"race_call_status":        r.RaceCallStatus,
		"last_updated":            r.LastUpdated.Format(TimeLayout),
		"precincts_reporting":     strconv.Itoa(r.PrecinctsReporting),
		"precincts_total":         strconv.Itoa(r.PrecinctsTotal),
		"precincts_reporting_pct": formatFloat(r.PrecinctsReportingPct),
		"expected_vote_pct":       formatOptional(r.ExpectedVotePct),
		"total_votes":             strconv.Itoa(r.TotalVotes),
	}
}

func candidateRows(r *models.CandidateRace, ft FileType) []Row {
	var rows []Row
	for _, c := range r.Candidates {
		p, ok := c.(*models.PersonCandidate)
		if !ok {
			continue
		}
		row := baseRow(&r.RaceBase)
		row["candidate_id"] = p.CandidateID
		row["first_name"] = p.FirstName
		row["last_name"] = p.LastName
		row["party"] = p.Party
		row["incumbent"] = strconv.FormatBool(p.Incumbent)
		row["vote_count"] = strconv.Itoa(p.VoteCount)
		row["vote_pct"] = formatFloat(p.VotePct)
		if ft == FileSenate || ft == FileHouse {
			row["office_id"] = r.OfficeID
			row["seat_name"] = deref(r.SeatName)
			row["seat_num"] = deref(r.SeatNum)
		}
		rows = append(rows, row)
	}
	return rows
}

func measureRows(m *models.BallotMeasure) []Row {
	rows := make([]Row, 0, len(m.Candidates))
	for _, c := range m.Candidates {
		row := baseRow(&m.RaceBase)
		row["description"] = m.Description
		row["category"] = m.Category
		row["summary"] = m.Summary
		row["candidate_id"] = c.Common().CandidateID
		row["option_name"] = c.DisplayName()
		row["vote_count"] = strconv.Itoa(c.Common().VoteCount)
		row["vote_pct"] = formatFloat(c.Common().VotePct)
		rows = append(rows, row)
	}
	return rows
}

// WriteResults writes one CSV per non-empty file family into dir.
func WriteResults(dir, timestamp string, rs *races.ResultSet) ([]WrittenFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	rows := Rows(rs)
	var written []WrittenFile
	for _, ft := range FileTypes {
		if len(rows[ft]) == 0 {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", ft, timestamp))
		if err := WriteCSV(path, Headers(ft), rows[ft]); err != nil {
			return written, err
		}
		written = append(written, WrittenFile{Type: ft, Path: path, Rows: len(rows[ft])})
	}
	return written, nil
}

// WriteCSV writes rows under the given header. Missing cells are left empty.
func WriteCSV(path string, headers []string, rows []Row) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return err
	}
	record := make([]string, len(headers))
	for _, row := range rows {
		for i, h := range headers {
			record[i] = row[h]
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(f float64) string {
	return utils.ToString(f)
}

func formatOptional(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
