package models

import (
	"github.com/minhland/adhub/internal/sheet"
)

// Record is one advertisement listing as exposed over HTTP. RowIndex is the
// sheet row the record currently occupies; it shifts on every delete, so it
// is addressing data, not identity. AdID is the caller-visible identifier.
type Record struct {
	RowIndex          int    `json:"rowIndex,omitempty"`
	Name              string `json:"name"`
	Mobile            string `json:"mobile"`
	Source            string `json:"source"`
	Type              string `json:"type"`
	Demand            string `json:"demand"`
	Area              string `json:"area"`
	Price             string `json:"price"`
	Product           string `json:"product"`
	TransactionStatus string `json:"transactionStatus"`
	Note              string `json:"note"`
	AdID              string `json:"adId"`
	AdContent         string `json:"ad_content"`
	ZaloArticleStatus string `json:"zalo_article_status"`
	ZaloMessageStatus string `json:"zalo_message_status"`
	PhotoURL          string `json:"photo_url"`
	FacebookStatus    string `json:"facebook_post_status"`
	WebsiteStatus     string `json:"website_status"`
	Email             string `json:"email"`
	Platforms         string `json:"platforms"`
	Purpose           string `json:"purpose"`
	ErrorMessage      string `json:"error_message,omitempty"`
}

// Fields lays the record out as a column-name keyed map for the store.
func (r *Record) Fields() map[string]string {
	return map[string]string{
		sheet.FieldName:              r.Name,
		sheet.FieldMobile:            r.Mobile,
		sheet.FieldSource:            r.Source,
		sheet.FieldType:              r.Type,
		sheet.FieldDemand:            r.Demand,
		sheet.FieldArea:              r.Area,
		sheet.FieldPrice:             r.Price,
		sheet.FieldProduct:           r.Product,
		sheet.FieldTransactionStatus: r.TransactionStatus,
		sheet.FieldNote:              r.Note,
		sheet.FieldAdID:              r.AdID,
		sheet.FieldAdContent:         r.AdContent,
		sheet.FieldZaloArticleStatus: r.ZaloArticleStatus,
		sheet.FieldZaloMessageStatus: r.ZaloMessageStatus,
		sheet.FieldPhotoURL:          r.PhotoURL,
		sheet.FieldFacebookStatus:    r.FacebookStatus,
		sheet.FieldWebsiteStatus:     r.WebsiteStatus,
		sheet.FieldEmail:             r.Email,
		sheet.FieldPlatforms:         r.Platforms,
		sheet.FieldPurpose:           r.Purpose,
		sheet.FieldErrorMessage:      r.ErrorMessage,
	}
}

// RecordFromFields builds a Record from a stored field map and its position.
func RecordFromFields(position int, fields map[string]string) Record {
	return Record{
		RowIndex:          position,
		Name:              fields[sheet.FieldName],
		Mobile:            fields[sheet.FieldMobile],
		Source:            fields[sheet.FieldSource],
		Type:              fields[sheet.FieldType],
		Demand:            fields[sheet.FieldDemand],
		Area:              fields[sheet.FieldArea],
		Price:             fields[sheet.FieldPrice],
		Product:           fields[sheet.FieldProduct],
		TransactionStatus: fields[sheet.FieldTransactionStatus],
		Note:              fields[sheet.FieldNote],
		AdID:              fields[sheet.FieldAdID],
		AdContent:         fields[sheet.FieldAdContent],
		ZaloArticleStatus: fields[sheet.FieldZaloArticleStatus],
		ZaloMessageStatus: fields[sheet.FieldZaloMessageStatus],
		PhotoURL:          fields[sheet.FieldPhotoURL],
		FacebookStatus:    fields[sheet.FieldFacebookStatus],
		WebsiteStatus:     fields[sheet.FieldWebsiteStatus],
		Email:             fields[sheet.FieldEmail],
		Platforms:         fields[sheet.FieldPlatforms],
		Purpose:           fields[sheet.FieldPurpose],
		ErrorMessage:      fields[sheet.FieldErrorMessage],
	}
}
