package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/formlab/formbuilder-service/internal/models"
	"github.com/formlab/formbuilder-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// ExportService renders the aggregated response table of a form as a
// downloadable report. One row per response, one column per question.
type ExportService interface {
	ExportResponsesToCSV(ctx context.Context, formID uint) ([]byte, error)
	ExportResponsesToExcel(ctx context.Context, formID uint) ([]byte, error)
}

type exportService struct {
	forms     FormService
	responses ResponseService
	logger    *slog.Logger
}

func NewExportService(forms FormService, responses ResponseService, logger *slog.Logger) ExportService {
	return &exportService{
		forms:     forms,
		responses: responses,
		logger:    logger,
	}
}

// reportTable is the aggregated view: Headers covers the metadata columns
// plus one column per question of the form, in form order.
type reportTable struct {
	Headers []string
	Rows    [][]string
}

func (s *exportService) ExportResponsesToCSV(ctx context.Context, formID uint) ([]byte, error) {
	table, err := s.buildReportTable(ctx, formID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(table.Headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *exportService) ExportResponsesToExcel(ctx context.Context, formID uint) ([]byte, error) {
	table, err := s.buildReportTable(ctx, formID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Responses"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range table.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, row := range table.Rows {
		for colIndex, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIndex+1, rowIndex+2)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *exportService) buildReportTable(ctx context.Context, formID uint) (*reportTable, error) {
	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	questions, err := form.DecodeQuestions()
	if err != nil {
		return nil, fmt.Errorf("failed to decode form questions: %w", err)
	}

	responses, err := s.responses.ListByForm(ctx, formID, repositories.ResponseFilters{SortOrder: "asc"})
	if err != nil {
		return nil, err
	}

	headers := []string{"Response #", "Submitted At", "Submitted By"}
	for i, question := range questions {
		label := question.Prompt
		if label == "" {
			label = fmt.Sprintf("Question %d", i+1)
		}
		headers = append(headers, label)
	}

	table := &reportTable{Headers: headers}
	for i, response := range responses {
		answers, err := response.DecodeAnswers()
		if err != nil {
			return nil, fmt.Errorf("failed to decode response %d answers: %w", response.ID, err)
		}
		byQuestion := make(map[string]models.Answer, len(answers))
		for _, answer := range answers {
			byQuestion[answer.QuestionID] = answer
		}

		submittedBy := ""
		if response.SubmittedBy != nil {
			submittedBy = *response.SubmittedBy
		}
		row := []string{
			fmt.Sprintf("%d", i+1),
			response.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			submittedBy,
		}

		for _, question := range questions {
			answer, ok := byQuestion[question.ID]
			if !ok {
				// Permissive contract: a response may omit questions
				row = append(row, "")
				continue
			}
			row = append(row, s.formatAnswer(question, answer))
		}

		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// formatAnswer renders an answer payload as a single report cell.
func (s *exportService) formatAnswer(question models.Question, answer models.Answer) string {
	payload, err := models.DecodeAnswerPayload(question.Type, answer.Answer)
	if err != nil {
		s.logger.Warn("unreadable answer payload", "question_id", question.ID, "error", err)
		return string(answer.Answer)
	}

	switch typed := payload.(type) {
	case models.CategorizeAnswer:
		pairs := make([]string, 0, len(typed))
		for item, category := range typed {
			pairs = append(pairs, fmt.Sprintf("%s: %s", item, category))
		}
		sort.Strings(pairs)
		return strings.Join(pairs, "; ")

	case models.ClozeAnswer:
		return strings.Join(typed, ", ")

	case models.ComprehensionAnswer:
		content, ok := question.Content.(models.ComprehensionContent)
		parts := make([]string, 0, len(typed))
		for i, selected := range typed {
			if selected == nil {
				parts = append(parts, "-")
				continue
			}
			if ok && i < len(content.MCQs) && *selected >= 0 && *selected < len(content.MCQs[i].Options) {
				parts = append(parts, content.MCQs[i].Options[*selected])
			} else {
				parts = append(parts, fmt.Sprintf("%d", *selected))
			}
		}
		return strings.Join(parts, "; ")

	default:
		return string(answer.Answer)
	}
}
