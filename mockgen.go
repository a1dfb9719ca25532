//go:build gomock || generate

package qclient

//go:generate sh -c "go run go.uber.org/mock/mockgen -build_flags=\"-tags=gomock\" -package qclient -self_package github.com/quic-go/qclient -destination mock_session_test.go github.com/quic-go/qclient Session"
//go:generate sh -c "go run go.uber.org/mock/mockgen -build_flags=\"-tags=gomock\" -package qclient -self_package github.com/quic-go/qclient -destination mock_engine_test.go github.com/quic-go/qclient Engine"
//go:generate sh -c "go run go.uber.org/mock/mockgen -build_flags=\"-tags=gomock\" -package qclient -self_package github.com/quic-go/qclient -destination mock_stream_test.go github.com/quic-go/qclient Stream"
//go:generate sh -c "go run go.uber.org/mock/mockgen -build_flags=\"-tags=gomock\" -package qclient -self_package github.com/quic-go/qclient -destination mock_datagram_socket_test.go github.com/quic-go/qclient DatagramSocket"
//go:generate sh -c "go run go.uber.org/mock/mockgen -build_flags=\"-tags=gomock\" -package qclient -self_package github.com/quic-go/qclient -destination mock_socket_factory_test.go github.com/quic-go/qclient SocketFactory"
//go:generate sh -c "go run go.uber.org/mock/mockgen -build_flags=\"-tags=gomock\" -package qclient -self_package github.com/quic-go/qclient -destination mock_packet_visitor_test.go github.com/quic-go/qclient PacketVisitor"
