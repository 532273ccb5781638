package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/prizeday/contest-backend/internal/repositories"
)

// Compile-time check to ensure ExportServiceImpl implements ExportService
var _ ExportService = (*ExportServiceImpl)(nil)

// ExportServiceImpl builds admin CSV downloads
type ExportServiceImpl struct {
	participantRepo repositories.ParticipantRepository
	winnerRepo      repositories.WinnerRepository
}

// NewExportService creates a new ExportServiceImpl
func NewExportService(participantRepo repositories.ParticipantRepository, winnerRepo repositories.WinnerRepository) *ExportServiceImpl {
	return &ExportServiceImpl{
		participantRepo: participantRepo,
		winnerRepo:      winnerRepo,
	}
}

// ExportCSV renders one day's participants, or the full winners ledger,
// as a CSV document. exportType is "participants" or "winners".
func (s *ExportServiceImpl) ExportCSV(ctx context.Context, exportType, date string) (string, []byte, error) {
	switch exportType {
	case "participants":
		return s.exportParticipants(ctx, date)
	case "winners":
		return s.exportWinners(ctx)
	default:
		return "", nil, fmt.Errorf("unknown export type: %s", exportType)
	}
}

func (s *ExportServiceImpl) exportParticipants(ctx context.Context, date string) (string, []byte, error) {
	participants, err := s.participantRepo.FindByDate(ctx, date)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load participants: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Name", "Email", "Phone", "Date", "Session", "Payment ID", "Payment Status", "Winner", "Position"}); err != nil {
		return "", nil, err
	}
	for _, p := range participants {
		position := ""
		if p.PrizePosition != nil {
			position = strconv.Itoa(*p.PrizePosition)
		}
		record := []string{
			p.Name,
			p.Email,
			p.Phone,
			p.EntryDate,
			strconv.Itoa(p.Session),
			p.PaymentID,
			p.PaymentStatus,
			strconv.FormatBool(p.IsWinner),
			position,
		}
		if err := w.Write(record); err != nil {
			return "", nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("participants_%s.csv", date), buf.Bytes(), nil
}

func (s *ExportServiceImpl) exportWinners(ctx context.Context) (string, []byte, error) {
	winners, err := s.winnerRepo.FindAll(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load winners: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Name", "Email", "Date", "Session", "Position", "Notified"}); err != nil {
		return "", nil, err
	}
	for _, winner := range winners {
		record := []string{
			winner.Name,
			winner.Email,
			winner.ContestDate,
			strconv.Itoa(winner.Session),
			strconv.Itoa(winner.PrizePosition),
			strconv.FormatBool(winner.Notified),
		}
		if err := w.Write(record); err != nil {
			return "", nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, err
	}
	return "winners_all.csv", buf.Bytes(), nil
}
