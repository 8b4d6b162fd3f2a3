package main

import (
	"context"
	"fmt"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/prioribin-service/pkg/models"

	wasteGrpc "liyu1981.xyz/prioribin-service/pkg/grpc"
)

// randomFillLevel mimics an ultrasonic sensor: mostly anywhere in 0..100, but 30% of
// readings land in 80..100 so Critical transitions actually happen.
func randomFillLevel(rnd *rand.Rand) int {
	if rnd.Float64() < 0.3 {
		return 80 + rnd.Intn(21)
	}
	return rnd.Intn(101)
}

type fillSender func(ctx context.Context, binID string, fillLevel int) (models.Status, error)

func httpSender(client *apiClient) fillSender {
	return func(ctx context.Context, binID string, fillLevel int) (models.Status, error) {
		return client.updateFill(binID, fillLevel)
	}
}

func grpcSender(client wasteGrpc.IngestServiceClient) fillSender {
	return func(ctx context.Context, binID string, fillLevel int) (models.Status, error) {
		req, err := structpb.NewStruct(map[string]any{"bin_id": binID, "fill_level": fillLevel})
		if err != nil {
			return "", err
		}
		resp, err := client.UpdateFill(ctx, req)
		if err != nil {
			return "", err
		}
		if !resp.Fields["success"].GetBoolValue() {
			return "", fmt.Errorf("%s", resp.Fields["message"].GetStringValue())
		}
		return models.Status(resp.Fields["status"].GetStringValue()), nil
	}
}

func newSimulateCmd() *cobra.Command {
	var (
		binID    string
		lat, lon float64
		interval time.Duration
		count    int
		grpcAddr string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Act as a fill sensor, posting a random level every interval",
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive, got %s", interval)
			}

			client := newAPIClient(serverURL)
			if err := waitHealthy(client, 30*time.Second); err != nil {
				return err
			}

			if _, _, err := client.register(binID, lat, lon); err != nil {
				return err
			}

			send := httpSender(client)
			if grpcAddr != "" {
				conn, err := grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
				if err != nil {
					return err
				}
				defer conn.Close()
				send = grpcSender(wasteGrpc.NewIngestServiceClient(conn))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for sent := 0; count <= 0 || sent < count; sent++ {
				level := randomFillLevel(rnd)
				status, err := send(ctx, binID, level)
				if err != nil {
					fmt.Printf("%s  %s fill=%d%% failed: %v\n", time.Now().Format(time.TimeOnly), binID, level, err)
				} else {
					fmt.Printf("%s  %s fill=%d%% status=%s\n", time.Now().Format(time.TimeOnly), binID, level, status)
				}

				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&binID, "bin", "BIN-01", "Bin id to report for, registered if missing")
	cmd.Flags().Float64Var(&lat, "lat", 9.005401, "Latitude used when registering")
	cmd.Flags().Float64Var(&lon, "lon", 38.763611, "Longitude used when registering")
	cmd.Flags().DurationVarP(&interval, "interval", "i", 3*time.Second, "Time between readings")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Stop after this many readings, 0 runs until interrupted")
	cmd.Flags().StringVar(&grpcAddr, "grpc", "", "Send readings over gRPC to this host:port instead of HTTP")
	return cmd
}
