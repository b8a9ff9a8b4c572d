package handlers

// User facing notification texts
const (
	msgLoaded           = "Memos loaded"
	msgLoadFailed       = "Failed to load memos"
	msgCategoriesFailed = "Failed to load categories"
	msgRequiredFields   = "Please fill in all required fields"
	msgCreated          = "Memo added"
	msgCreateFailed     = "Failed to add memo"
	msgDeleted          = "Memo deleted"
	msgDeleteFailed     = "Failed to delete memo"
)
