package models

// ArchivedInvoice represents an invoice PDF stored in Google Drive
// Example response:
// {
//   "saleId": 42,
//   "driveFileId": "1AbCdEf",
//   "fileName": "invoice-42-9f1c2b3a.pdf",
//   "url": "https://drive.google.com/file/d/1AbCdEf/view",
//   "sizeBytes": 48211
// }
type ArchivedInvoice struct {
	SaleID      int64  `json:"saleId"`
	DriveFileID string `json:"driveFileId"`
	FileName    string `json:"fileName"`
	URL         string `json:"url"`
	SizeBytes   int    `json:"sizeBytes"`
}
