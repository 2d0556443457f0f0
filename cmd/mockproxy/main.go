// mockproxy is a development stand-in for the remote API proxy. It accepts
// the same resource endpoints the sync layer talks to, keeps everything in
// memory, and is idempotent on record ids so redelivered operations are
// harmless.
package main

import (
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var addr string

var rootCmd = &cobra.Command{
	Use:   "mockproxy",
	Short: "Mock remote proxy for the sakan data core",
	Long:  `mockproxy emulates the remote resident/SMS proxy for development and manual testing.`,
	Run: func(cmd *cobra.Command, args []string) {
		run()
	},
}

func init() {
	rootCmd.Flags().StringVar(&addr, "addr", ":8090", "listen address")
}

type record = map[string]any

type memTable struct {
	mu   sync.Mutex
	rows map[string]record
}

func newMemTable() *memTable {
	return &memTable{rows: make(map[string]record)}
}

func run() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("starting mockproxy", zap.String("addr", addr))

	residents := newMemTable()

	router := gin.Default()

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	router.POST("/api/residents", func(c *gin.Context) {
		var body record
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		id, _ := body["id"].(string)
		if id == "" {
			id = uuid.NewString()
			body["id"] = id
		}

		residents.mu.Lock()
		residents.rows[id] = body
		residents.mu.Unlock()

		logger.Info("resident upserted", zap.String("id", id))
		c.JSON(http.StatusOK, gin.H{"success": true, "resident": body})
	})

	router.PUT("/api/residents/:id", func(c *gin.Context) {
		var body record
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		id := c.Param("id")
		body["id"] = id

		residents.mu.Lock()
		residents.rows[id] = body
		residents.mu.Unlock()

		c.JSON(http.StatusOK, gin.H{"success": true, "resident": body})
	})

	router.DELETE("/api/residents/:id", func(c *gin.Context) {
		id := c.Param("id")

		residents.mu.Lock()
		delete(residents.rows, id)
		residents.mu.Unlock()

		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	router.POST("/api/sms", func(c *gin.Context) {
		var body struct {
			To      string `json:"to"`
			Message string `json:"message"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		if body.To == "" {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": "missing recipient"})
			return
		}

		logger.Info("sms accepted",
			zap.String("to", body.To), zap.Int("length", len(body.Message)))
		c.JSON(http.StatusOK, gin.H{"success": true, "sentAt": time.Now().UTC()})
	})

	if err := router.Run(addr); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
