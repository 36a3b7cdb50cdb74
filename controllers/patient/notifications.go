package patient

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medbook/clinic-app/db"
	"github.com/medbook/clinic-app/models"
	"github.com/medbook/clinic-app/utils"
)

// GetNotifications lists the user's notifications, newest first.
// ?unread=true narrows to unread ones.
func GetNotifications(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	query := db.DB.Where("user_id = ?", userID).Order("created_at desc")
	if c.Query("unread") == "true" {
		query = query.Where("read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to fetch notifications", err))
	}

	var unread int64
	db.DB.Model(&models.Notification{}).Where("user_id = ? AND read = ?", userID, false).Count(&unread)

	return c.JSON(fiber.Map{
		"notifications": notifications,
		"unread":        unread,
	})
}

// MarkNotificationRead marks one notification as read.
func MarkNotificationRead(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var notification models.Notification
	if err := db.DB.First(&notification, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("notification not found"))
	}
	if notification.UserID != userID {
		return utils.Fail(c, utils.Forbidden("not your notification"))
	}

	if err := db.DB.Model(&notification).Update("read", true).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to update notification", err))
	}
	return c.JSON(notification)
}

// MarkAllNotificationsRead clears the unread counter.
func MarkAllNotificationsRead(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to update notifications", err))
	}
	return c.JSON(fiber.Map{"message": "All notifications marked read"})
}
