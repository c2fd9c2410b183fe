package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/giftola/internal/middleware"
	"github.com/example/giftola/internal/models"
	"github.com/example/giftola/internal/services"
	"github.com/example/giftola/internal/utils"
)

const acceptInviteBaseURL = "https://giftola.app/groups/accept-invite"

// GroupsHandler manages shared gifting groups and their invitations.
type GroupsHandler struct {
	db   *gorm.DB
	mail *services.MailService
}

// NewGroupsHandler constructs a GroupsHandler.
func NewGroupsHandler(db *gorm.DB, mail *services.MailService) *GroupsHandler {
	return &GroupsHandler{db: db, mail: mail}
}

type groupRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Create starts a group with the creator as its only member.
func (h *GroupsHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req groupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Group name is required")
	}

	group := models.Group{
		Name:      req.Name,
		Image:     req.Image,
		Members:   []string{userID.String()},
		CreatedBy: userID,
	}

	if err := h.db.Create(&group).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusCreated, "create_group", "Group created successfully", group)
}

// memberProfile is the sanitized view of a group member.
type memberProfile struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	ProfileImage *string   `json:"profileImage"`
}

type groupView struct {
	models.Group
	MemberProfiles []memberProfile `json:"memberProfiles"`
}

// List returns every active group the user belongs to, with member profiles.
func (h *GroupsHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var groups []models.Group
	if err := h.db.Where("deleted_at IS NULL").Order("created_at desc").Find(&groups).Error; err != nil {
		return err
	}

	views := make([]groupView, 0, len(groups))
	for _, group := range groups {
		if !containsMember(group.Members, userID.String()) {
			continue
		}

		profiles, err := h.memberProfiles(group.Members)
		if err != nil {
			return err
		}
		views = append(views, groupView{Group: group, MemberProfiles: profiles})
	}

	return utils.Respond(c, fiber.StatusOK, "get_groups", "Groups retrieved successfully", views)
}

// Get returns one group by id.
func (h *GroupsHandler) Get(c *fiber.Ctx) error {
	group, err := h.load(c)
	if err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "get_group", "Group retrieved successfully", group)
}

// Update renames or re-images a group. Membership and lifecycle columns are
// not writable here.
func (h *GroupsHandler) Update(c *fiber.Ctx) error {
	group, err := h.load(c)
	if err != nil {
		return err
	}

	userID, _ := middleware.GetCurrentUserID(c)
	if group.CreatedBy != userID {
		return fiber.NewError(fiber.StatusForbidden, "You are not authorized to update this group")
	}

	var req groupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Image != "" {
		updates["image"] = req.Image
	}

	if err := h.db.Model(group).Updates(updates).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "update_group", "Group updated successfully", fiber.Map{"id": group.ID})
}

// Delete soft-deletes a group.
func (h *GroupsHandler) Delete(c *fiber.Ctx) error {
	group, err := h.load(c)
	if err != nil {
		return err
	}

	userID, _ := middleware.GetCurrentUserID(c)
	if group.CreatedBy != userID {
		return fiber.NewError(fiber.StatusForbidden, "You are not authorized to delete this group")
	}

	now := time.Now()
	if err := h.db.Model(group).Update("deleted_at", &now).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "delete_group", "Group deleted successfully", fiber.Map{"id": group.ID})
}

// Members returns the sanitized member profiles of a group the caller
// belongs to.
func (h *GroupsHandler) Members(c *fiber.Ctx) error {
	group, _, err := loadMemberGroup(h.db, c)
	if err != nil {
		return err
	}

	profiles, err := h.memberProfiles(group.Members)
	if err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "get_group_members", "Group members retrieved successfully", profiles)
}

// Invite mails a group invitation to an email address.
func (h *GroupsHandler) Invite(c *fiber.Ctx) error {
	group, err := h.load(c)
	if err != nil {
		return err
	}

	email := c.Query("email")
	if email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide an email")
	}

	acceptLink := fmt.Sprintf("%s?groupId=%s&email=%s", acceptInviteBaseURL, group.ID, email)
	if err := h.mail.SendGroupInvite(email, email, group.Name, acceptLink); err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "invite_group_member", "Invite sent successfully", nil)
}

// AcceptInvite adds the invited user to the group's member list. The route
// is reachable without a session token so the mail link works.
func (h *GroupsHandler) AcceptInvite(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Query("groupId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid group id")
	}

	email := c.Query("email")
	if email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide an email")
	}

	var user models.User
	if err := h.db.Where("email = ? AND deleted_at IS NULL", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "No account exists for this email")
		}
		return err
	}

	var group models.Group
	if err := h.db.First(&group, "id = ?", groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "Group doesn't exist")
		}
		return err
	}
	if group.DeletedAt != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Group doesn't exist")
	}

	if containsMember(group.Members, user.ID.String()) {
		return fiber.NewError(fiber.StatusBadRequest, "Already a member of this group")
	}

	group.Members = append(group.Members, user.ID.String())
	if err := h.db.Save(&group).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "accept_group_invite", "Invitation accepted successfully", fiber.Map{"id": group.ID})
}

// load fetches the group from the path id; any active group is readable by
// its members, so ownership is checked by mutating callers.
func (h *GroupsHandler) load(c *fiber.Ctx) (*models.Group, error) {
	groupID, err := uuid.Parse(c.Params("id", c.Query("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid group id")
	}

	var group models.Group
	if err := h.db.First(&group, "id = ?", groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Group doesn't exist")
		}
		return nil, err
	}

	if group.DeletedAt != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Group doesn't exist")
	}

	return &group, nil
}

func (h *GroupsHandler) memberProfiles(memberIDs []string) ([]memberProfile, error) {
	profiles := make([]memberProfile, 0, len(memberIDs))
	for _, raw := range memberIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}

		var user models.User
		if err := h.db.First(&user, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		profiles = append(profiles, memberProfile{
			ID:           user.ID,
			Name:         user.Name,
			Email:        user.Email,
			ProfileImage: user.ProfileImage,
		})
	}
	return profiles, nil
}

func containsMember(members []string, id string) bool {
	for _, member := range members {
		if member == id {
			return true
		}
	}
	return false
}
