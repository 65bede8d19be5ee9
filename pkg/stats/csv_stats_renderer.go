package stats

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type StatsRenderer interface {
	RenderStats(stats ActivitySummary) (string, error)
}

type CsvStatsRendererImpl struct {
}

func NewCsvStatsRenderer() *CsvStatsRendererImpl {
	return &CsvStatsRendererImpl{}
}

func (t *CsvStatsRendererImpl) RenderStats(stats ActivitySummary) (string, error) {
	data := make([][]string, 0, len(stats.Days)+len(stats.Pipeline)+4)
	data = append(data, []string{"Date", "Calls", "Texts", "Emails", "Meetings", "Total"})
	for _, day := range stats.Days {
		data = append(data, []string{
			day.Date.Format("02/01/2006"),
			strconv.Itoa(day.Calls),
			strconv.Itoa(day.Texts),
			strconv.Itoa(day.Emails),
			strconv.Itoa(day.Meetings),
			strconv.Itoa(day.Total),
		})
	}
	data = append(data, []string{
		"SUM",
		strconv.Itoa(stats.TotalCalls),
		strconv.Itoa(stats.TotalTexts),
		strconv.Itoa(stats.TotalEmails),
		strconv.Itoa(stats.TotalMeetings),
		strconv.Itoa(stats.TotalContacts),
	})

	data = append(data, []string{}, []string{"Stage", "Clients"})
	for _, stage := range stats.Pipeline {
		data = append(data, []string{string(stage.Stage), strconv.Itoa(stage.Count)})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if len(row) == 0 {
			// csv.Writer rejects empty records, write the separator directly
			b.WriteString("\n")
			continue
		}
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
		writer.Flush()
	}

	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
