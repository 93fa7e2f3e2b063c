package request

// FriendRequestRequest sends a friend request to the user owning the email.
type FriendRequestRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// FriendActionRequest accepts or rejects a pending request by id.
type FriendActionRequest struct {
	RequestId string `json:"requestId" binding:"required"`
}

// RemoveFriendRequest severs the friendship with the given user.
type RemoveFriendRequest struct {
	FriendId string `json:"friendId" binding:"required"`
}
