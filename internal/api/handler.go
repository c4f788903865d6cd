package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-ledger/internal/extractor"
	"github.com/insightdelivered/statement-ledger/internal/mapping"
	"github.com/insightdelivered/statement-ledger/internal/models"
	"github.com/insightdelivered/statement-ledger/internal/pipeline"
	"github.com/insightdelivered/statement-ledger/internal/writer"
)

// Version reported by /api/health and /api/convert.
const Version = "1.0.0"

var (
	store = mapping.NewStore(".")
	log   = zerolog.Nop()
)

// Configure sets the mapping store directory and logger used by the
// handlers. Call before serving.
func Configure(mappingsDir string, logger zerolog.Logger) {
	store = mapping.NewStore(mappingsDir)
	log = logger
}

// NewApp builds the fiber application with all routes registered.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             32 << 20,
		DisableStartupMessage: true,
	})
	app.Use(func(c *fiber.Ctx) error {
		c.Set("Access-Control-Allow-Origin", "*")
		c.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusOK)
		}
		return c.Next()
	})
	app.Get("/api/health", HandleHealth)
	app.Post("/api/convert", HandleConvert)
	return app
}

// ConvertResponse is the JSON response from /api/convert.
type ConvertResponse struct {
	Success         bool                       `json:"success"`
	Error           string                     `json:"error,omitempty"`
	Warning         string                     `json:"warning,omitempty"`
	Mode            string                     `json:"mode,omitempty"`
	Transactions    []models.TransactionRecord `json:"transactions"`
	CSV             string                     `json:"csv,omitempty"`
	TotalDeposit    float64                    `json:"totalDeposit"`
	TotalWithdrawal float64                    `json:"totalWithdrawal"`
	Count           int                        `json:"count"`
	Version         string                     `json:"version,omitempty"`
}

// HandleHealth reports service liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": Version,
	})
}

// HandleConvert accepts a multipart statement upload and returns the
// extracted, classified transactions.
//
// Form fields: file (PDF, required), mode (custom+default or trend),
// name and account (account identity for the mapping store), default
// ("false" disables the built-in rules), custom (JSON object of
// keyword→ledger, enables custom mapping), trend (optional XLSX with
// Particulars / Ledger Name columns).
func HandleConvert(c *fiber.Ctx) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("convert handler crashed")
			err = writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("internal error: %v", rec))
		}
	}()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "Only PDF files are supported.")
	}

	mode, err := models.ParseMappingMode(c.FormValue("mode"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	opts := pipeline.Options{
		Mode:          mode,
		EnableDefault: c.FormValue("default") != "false",
	}

	if customJSON := c.FormValue("custom"); customJSON != "" {
		var pairs models.PairList
		if err := json.Unmarshal([]byte(customJSON), &pairs); err != nil {
			return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("invalid custom mapping: %v", err))
		}
		opts.EnableCustom = true
		opts.CustomMap = pairs
	}

	if trendHeader, err := c.FormFile("trend"); err == nil && trendHeader != nil {
		tf, err := trendHeader.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "could not read trend workbook")
		}
		pairs, loadErr := mapping.LoadTrendXLSX(tf)
		tf.Close()
		if loadErr != nil {
			return writeError(c, fiber.StatusBadRequest, loadErr.Error())
		}
		opts.TrendMap = pairs
	}

	// Mappings persist per account identity: loaded once before the run
	// to fill whatever the request didn't supply, saved once after.
	identity := models.AccountIdentity{
		HolderName:    strings.TrimSpace(c.FormValue("name")),
		AccountNumber: strings.TrimSpace(c.FormValue("account")),
	}
	hasIdentity := identity.HolderName != "" && identity.AccountNumber != ""
	if hasIdentity {
		saved, err := store.Load(identity)
		if err != nil {
			log.Warn().Err(err).Msg("could not load saved mappings")
		} else {
			if len(opts.CustomMap) == 0 && len(saved.CustomMap) > 0 {
				opts.EnableCustom = true
				opts.CustomMap = saved.CustomMap
			}
			if len(opts.TrendMap) == 0 {
				opts.TrendMap = saved.TrendMap
			}
		}
	}

	pages, status, err := extractUpload(fileHeader)
	if err != nil {
		return writeError(c, status, err.Error())
	}

	records := pipeline.Run(pages, opts)

	var csvBuf strings.Builder
	csvWriter := &writer.CSVWriter{IncludeHeader: false}
	if err := csvWriter.Write(&csvBuf, records); err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
	}

	if hasIdentity {
		set := models.MappingSet{CustomMap: opts.CustomMap, TrendMap: opts.TrendMap}
		if err := store.Save(identity, set); err != nil {
			log.Warn().Err(err).Msg("could not save mappings")
		}
	}

	totalDeposit := 0.0
	totalWithdrawal := 0.0
	for _, rec := range records {
		totalDeposit += rec.Deposit.InexactFloat64()
		totalWithdrawal += rec.Withdrawal.InexactFloat64()
	}

	if records == nil {
		records = []models.TransactionRecord{}
	}

	resp := ConvertResponse{
		Success:         true,
		Mode:            string(mode),
		Transactions:    records,
		CSV:             csvBuf.String(),
		TotalDeposit:    totalDeposit,
		TotalWithdrawal: totalWithdrawal,
		Count:           len(records),
		Version:         Version,
	}
	if len(records) == 0 {
		resp.Warning = "No valid transactions found in this PDF."
	}

	log.Info().Int("count", resp.Count).Str("mode", resp.Mode).Msg("converted statement")
	return c.JSON(resp)
}

// extractUpload saves the uploaded PDF to a temp file and extracts its
// page texts. Extraction failure maps to 422: the upload was understood
// but the document is unreadable.
func extractUpload(fileHeader *multipart.FileHeader) ([]string, int, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, fiber.StatusInternalServerError, fmt.Errorf("failed to open upload")
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return nil, fiber.StatusInternalServerError, fmt.Errorf("failed to create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return nil, fiber.StatusInternalServerError, fmt.Errorf("failed to save upload")
	}
	tmp.Close()

	pages, err := extractor.ExtractText(tmp.Name())
	if err != nil {
		return nil, fiber.StatusUnprocessableEntity, err
	}
	return pages, fiber.StatusOK, nil
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success:      false,
		Error:        msg,
		Transactions: []models.TransactionRecord{},
	})
}
