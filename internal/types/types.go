package types

import (
	"encoding/json"
	"time"
)

// FileType represents supported import file types
type FileType string

const (
	FileTypeCSV  FileType = "csv"
	FileTypeXLS  FileType = "xls"
	FileTypeXLSX FileType = "xlsx"
)

// Canonical field names a spreadsheet column can be mapped to.
// Pass-through columns keep their own normalized header as the field name.
const (
	FieldMQ                     = "mq"
	FieldShipmentTypeV2         = "shipment_type_v2"
	FieldSupplierName           = "supplier_name"
	FieldModel                  = "model"
	FieldSerial                 = "serial"
	FieldInvoiceDate            = "invoice_date"
	FieldLocation               = "location"
	FieldPortOfEmbarkation      = "port_of_embarkation"
	FieldCurrencyType           = "currency_type"
	FieldIncoterm               = "incoterm"
	FieldEXWValueFormatted      = "exw_value_formatted"
	FieldFOBExpenses            = "fob_expenses"
	FieldDisassemblyLoadValue   = "disassembly_load_value"
	FieldUSDJPYRate             = "usd_jpy_rate"
	FieldTRM                    = "trm"
	FieldPaymentDate            = "payment_date"
	FieldShipmentDepartureDate  = "shipment_departure_date"
	FieldShipmentArrivalDate    = "shipment_arrival_date"
	FieldSalesReported          = "sales_reported"
	FieldCommerceReported       = "commerce_reported"
	FieldLuisLemusReported      = "luis_lemus_reported"
	FieldYear                   = "year"
	FieldHours                  = "hours"
	FieldSpec                   = "spec"
	FieldBrand                  = "brand"
	FieldMachineType            = "machine_type"
	FieldTipo                   = "tipo"
	FieldPurchaseType           = "purchase_type"
	FieldOceanUSD               = "ocean_usd"
	FieldGastosPtoCOP           = "gastos_pto_cop"
	FieldTrasladosNacionalesCOP = "traslados_nacionales_cop"
	FieldPptoReparacionCOP      = "ppto_reparacion_cop"
	FieldPvpEst                 = "pvp_est"
)

// ParsedRow is one equipment purchase record assembled from a spreadsheet row.
// Canonical fields are typed; columns no mapping rule recognizes land in Extra
// under their normalized header so they survive the round trip to the API.
type ParsedRow struct {
	MQ                     *string  `json:"mq,omitempty"`
	ShipmentTypeV2         *string  `json:"shipment_type_v2,omitempty"`
	SupplierName           *string  `json:"supplier_name,omitempty"`
	Model                  *string  `json:"model,omitempty"`
	Serial                 *string  `json:"serial,omitempty"`
	InvoiceDate            *string  `json:"invoice_date,omitempty"`
	Location               *string  `json:"location,omitempty"`
	PortOfEmbarkation      *string  `json:"port_of_embarkation,omitempty"`
	CurrencyType           *string  `json:"currency_type,omitempty"`
	Incoterm               *string  `json:"incoterm,omitempty"`
	EXWValueFormatted      *string  `json:"exw_value_formatted,omitempty"`
	FOBExpenses            *float64 `json:"fob_expenses,omitempty"`
	DisassemblyLoadValue   *float64 `json:"disassembly_load_value,omitempty"`
	USDJPYRate             *float64 `json:"usd_jpy_rate,omitempty"`
	TRM                    *float64 `json:"trm,omitempty"`
	PaymentDate            *string  `json:"payment_date,omitempty"`
	ShipmentDepartureDate  *string  `json:"shipment_departure_date,omitempty"`
	ShipmentArrivalDate    *string  `json:"shipment_arrival_date,omitempty"`
	SalesReported          *string  `json:"sales_reported,omitempty"`
	CommerceReported       *string  `json:"commerce_reported,omitempty"`
	LuisLemusReported      *string  `json:"luis_lemus_reported,omitempty"`
	Year                   *float64 `json:"year,omitempty"`
	Hours                  *float64 `json:"hours,omitempty"`
	Spec                   *string  `json:"spec,omitempty"`
	Brand                  *string  `json:"brand,omitempty"`
	MachineType            *string  `json:"machine_type,omitempty"`
	Tipo                   *string  `json:"tipo,omitempty"`
	PurchaseType           *string  `json:"purchase_type,omitempty"`
	OceanUSD               *float64 `json:"ocean_usd,omitempty"`
	GastosPtoCOP           *float64 `json:"gastos_pto_cop,omitempty"`
	TrasladosNacionalesCOP *float64 `json:"traslados_nacionales_cop,omitempty"`
	PptoReparacionCOP      *float64 `json:"ppto_reparacion_cop,omitempty"`
	PvpEst                 *float64 `json:"pvp_est,omitempty"`

	// Extra holds pass-through columns keyed by their normalized header.
	Extra map[string]string `json:"-"`
}

// Get returns the string form of a field for display purposes.
// Numeric fields are not covered; callers only need identity-ish fields.
func (r *ParsedRow) Get(field string) string {
	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	switch field {
	case FieldMQ:
		return deref(r.MQ)
	case FieldShipmentTypeV2:
		return deref(r.ShipmentTypeV2)
	case FieldSupplierName:
		return deref(r.SupplierName)
	case FieldModel:
		return deref(r.Model)
	case FieldSerial:
		return deref(r.Serial)
	case FieldInvoiceDate:
		return deref(r.InvoiceDate)
	case FieldLocation:
		return deref(r.Location)
	case FieldPortOfEmbarkation:
		return deref(r.PortOfEmbarkation)
	case FieldCurrencyType:
		return deref(r.CurrencyType)
	case FieldIncoterm:
		return deref(r.Incoterm)
	case FieldEXWValueFormatted:
		return deref(r.EXWValueFormatted)
	case FieldPaymentDate:
		return deref(r.PaymentDate)
	case FieldShipmentDepartureDate:
		return deref(r.ShipmentDepartureDate)
	case FieldShipmentArrivalDate:
		return deref(r.ShipmentArrivalDate)
	case FieldSalesReported:
		return deref(r.SalesReported)
	case FieldCommerceReported:
		return deref(r.CommerceReported)
	case FieldLuisLemusReported:
		return deref(r.LuisLemusReported)
	case FieldSpec:
		return deref(r.Spec)
	case FieldBrand:
		return deref(r.Brand)
	case FieldMachineType:
		return deref(r.MachineType)
	case FieldTipo:
		return deref(r.Tipo)
	case FieldPurchaseType:
		return deref(r.PurchaseType)
	default:
		return r.Extra[field]
	}
}

// MarshalJSON flattens Extra alongside the canonical fields so a record
// serializes to a single flat object for the bulk-upload API.
func (r ParsedRow) MarshalJSON() ([]byte, error) {
	type alias ParsedRow
	data, err := json.Marshal(alias(r))
	if err != nil {
		return nil, err
	}
	if len(r.Extra) == 0 {
		return data, nil
	}

	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, err
	}
	for k, v := range r.Extra {
		if _, taken := flat[k]; !taken {
			flat[k] = v
		}
	}
	return json.Marshal(flat)
}

// UploadResult is the summary reported by the purchases persistence API.
// Inserted and Duplicates are authoritative on the server side; the import
// pipeline only forwards them.
type UploadResult struct {
	Success        bool     `json:"success"`
	Inserted       int      `json:"inserted"`
	Duplicates     int      `json:"duplicates,omitempty"`
	TotalProcessed int      `json:"totalProcessed,omitempty"`
	Errors         []string `json:"errors,omitempty"`
}

// HasObservations reports whether a successful upload still carried
// server-side observations (duplicates skipped or per-record errors).
func (u *UploadResult) HasObservations() bool {
	return u.Duplicates > 0 || len(u.Errors) > 0
}

// PreviewItem is one row of the pre-submit preview table. Key is a
// display-only identifier, unique within the preview; it is unrelated to
// server-side deduplication.
type PreviewItem struct {
	Key string    `json:"key"`
	Row ParsedRow `json:"row"`
}

// ErrorItem is one rendered validation error with a unique display key.
type ErrorItem struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// ImportRunStatus represents the lifecycle of an import run audit record.
type ImportRunStatus string

const (
	RunStatusRunning                   ImportRunStatus = "running"
	RunStatusCompleted                 ImportRunStatus = "completed"
	RunStatusCompletedWithObservations ImportRunStatus = "completed_with_observations"
	RunStatusRejected                  ImportRunStatus = "rejected"
	RunStatusFailed                    ImportRunStatus = "failed"
)

// ImportRun is the audit record kept for every submit attempt.
type ImportRun struct {
	ID          string          `json:"id"`
	Filename    string          `json:"filename"`
	Status      ImportRunStatus `json:"status"`
	TotalRows   int             `json:"totalRows"`
	Inserted    int             `json:"inserted"`
	Duplicates  int             `json:"duplicates"`
	ErrorCount  int             `json:"errorCount"`
	StartedAt   time.Time       `json:"startedAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}

// StringPtr returns a pointer to the given string
func StringPtr(s string) *string {
	return &s
}

// Float64Ptr returns a pointer to the given float64
func Float64Ptr(f float64) *float64 {
	return &f
}
