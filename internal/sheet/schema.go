package sheet

// Field names of the listing table. The JSON names of the HTTP surface and
// the merge keys accepted by Store.Update are the same strings, so a request
// body maps straight onto columns.
const (
	FieldName              = "name"
	FieldMobile            = "mobile"
	FieldSource            = "source"
	FieldType              = "type"
	FieldDemand            = "demand"
	FieldArea              = "area"
	FieldPrice             = "price"
	FieldProduct           = "product"
	FieldTransactionStatus = "transactionStatus"
	FieldNote              = "note"
	FieldNoteHistory       = "note_history"
	FieldFirstContact      = "first_contact"
	FieldLastContact       = "last_contact"
	FieldDriveLink         = "drive_link"
	FieldFolderCreated     = "folder_created"
	FieldFolderID          = "folder_id"
	FieldDocCreated        = "doc_created"
	FieldAdID              = "adId"
	FieldAdContent         = "ad_content"
	FieldZaloArticleStatus = "zalo_article_status"
	FieldZaloMessageStatus = "zalo_message_status"
	FieldPhotoURL          = "photo_url"
	FieldFacebookStatus    = "facebook_post_status"
	FieldWebsiteStatus     = "website_status"
	FieldEmail             = "email"
	FieldPlatforms         = "platforms"
	FieldPurpose           = "purpose"
	FieldErrorMessage      = "error_message"
)

// columns maps every field to its position in the sheet, columns A through
// AD. Two columns (Y, Z) are reserved and carry no field name.
var columns = []string{
	FieldName,              // A
	FieldMobile,            // B
	FieldSource,            // C
	FieldType,              // D
	FieldDemand,            // E
	FieldArea,              // F
	FieldPrice,             // G
	FieldProduct,           // H
	FieldTransactionStatus, // I
	FieldNote,              // J
	FieldNoteHistory,       // K
	FieldFirstContact,      // L
	FieldLastContact,       // M
	FieldDriveLink,         // N
	FieldFolderCreated,     // O
	FieldFolderID,          // P
	FieldDocCreated,        // Q
	FieldAdID,              // R
	FieldAdContent,         // S
	FieldZaloArticleStatus, // T
	FieldZaloMessageStatus, // U
	FieldPhotoURL,          // V
	FieldFacebookStatus,    // W
	FieldWebsiteStatus,     // X
	"",                     // Y (reserved)
	"",                     // Z (reserved)
	FieldEmail,             // AA
	FieldPlatforms,         // AB
	FieldPurpose,           // AC
	FieldErrorMessage,      // AD
}

// RowWidth is the number of physical columns a record occupies.
var RowWidth = len(columns)

var columnIndex = buildColumnIndex()

func buildColumnIndex() map[string]int {
	idx := make(map[string]int, len(columns))
	for i, name := range columns {
		if name != "" {
			idx[name] = i
		}
	}
	return idx
}

// ColumnIndex returns the zero-based column position for a field name.
func ColumnIndex(name string) (int, bool) {
	i, ok := columnIndex[name]
	return i, ok
}

// Fields returns the field names in column order, reserved columns omitted.
func Fields() []string {
	out := make([]string, 0, len(columns))
	for _, name := range columns {
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// PadRow extends row with empty cells up to the full row width. The range
// API omits trailing empty cells, so stored rows can come back short.
func PadRow(row []string) []string {
	if len(row) >= RowWidth {
		return row[:RowWidth]
	}
	padded := make([]string, RowWidth)
	copy(padded, row)
	return padded
}

// RowToFields converts a physical row into a field map, empty cells included.
func RowToFields(row []string) map[string]string {
	row = PadRow(row)
	fields := make(map[string]string, len(columnIndex))
	for name, i := range columnIndex {
		fields[name] = row[i]
	}
	return fields
}

// FieldsToRow lays a field map out as a full-width row. Unknown keys are
// ignored, missing fields become empty cells.
func FieldsToRow(fields map[string]string) []string {
	row := make([]string, RowWidth)
	for name, value := range fields {
		if i, ok := columnIndex[name]; ok {
			row[i] = value
		}
	}
	return row
}
