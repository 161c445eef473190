package handler

type createBoardRequest struct {
	Name string `json:"name"`
}

type updateBoardNameRequest struct {
	Name string `json:"name"`
}

type addMemberRequest struct {
	UserID string `json:"user_id"`
}

type createListRequest struct {
	Name string `json:"name"`
}

type renameListRequest struct {
	Name string `json:"name"`
}

type createCardRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateCardRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type moveCardRequest struct {
	TargetListID   string `json:"target_list_id"`
	TargetPosition int    `json:"target_position"`
}
