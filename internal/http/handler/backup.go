package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"querybridge/internal/service"
)

// ListBackups lists recorded backups with limit & offset.
func ListBackups(svc service.BackupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

func backupError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "backup not found")
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// GetBackup returns one backup with a presigned manifest URL.
func GetBackup(svc service.BackupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		b, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return backupError(c, err)
		}
		return c.JSON(b)
	}
}

// GetBackupManifest streams the manifest JSON from object storage.
func GetBackupManifest(svc service.BackupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, info, err := svc.Manifest(c.UserContext(), id)
		if err != nil {
			return backupError(c, err)
		}
		c.Type("json")
		size := int(info.Size)
		if info.Size <= 0 {
			size = -1
		}
		// fasthttp closes the stream once the body is written.
		return c.SendStream(rc, size)
	}
}

// DeleteBackup removes a backup manifest and its ledger row.
func DeleteBackup(svc service.BackupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return backupError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
