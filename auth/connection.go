package auth

import (
	"fmt"

	"github.com/SSSOC-CAN/treadmill/utils"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

var (
	maxMsgRecvSize = grpc.MaxCallRecvMsgSize(1 * 1024 * 1024 * 200)
)

// TransportDialOption returns the transport credentials matching the server. An empty tlsCertPath means plaintext
func TransportDialOption(tlsCertPath string) (grpc.DialOption, error) {
	if tlsCertPath == "" {
		return grpc.WithTransportCredentials(insecure.NewCredentials()), nil
	}
	//get TLS credentials from TLS certificate file
	creds, err := credentials.NewClientTLSFromFile(tlsCertPath, "")
	if err != nil {
		return nil, err
	}
	return grpc.WithTransportCredentials(creds), nil
}

// ServerOptions returns the gRPC server options serving TLS from the given pair. Empty paths mean plaintext
func ServerOptions(tlsCertPath, tlsKeyPath string) ([]grpc.ServerOption, error) {
	if tlsCertPath == "" && tlsKeyPath == "" {
		return nil, nil
	}
	creds, err := credentials.NewServerTLSFromFile(tlsCertPath, tlsKeyPath)
	if err != nil {
		return nil, err
	}
	return []grpc.ServerOption{grpc.Creds(creds)}, nil
}

// GetClientConn returns the grpc Client connection for use in instantiating gRPC Clients
func GetClientConn(grpcServerAddr, grpcServerPort, tlsCertPath string) (*grpc.ClientConn, error) {
	transport, err := TransportDialOption(tlsCertPath)
	if err != nil {
		return nil, err
	}
	opts := []grpc.DialOption{transport}
	genericDialer := utils.ClientAddressDialer(grpcServerPort)
	opts = append(opts, grpc.WithContextDialer(genericDialer))
	opts = append(opts, grpc.WithDefaultCallOptions(maxMsgRecvSize))
	conn, err := grpc.Dial(grpcServerAddr+":"+grpcServerPort, opts...)
	if err != nil {
		return nil, fmt.Errorf("Unable to connect to RPC server: %v", err)
	}
	return conn, nil
}
