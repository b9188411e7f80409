package emulator

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/batpulabs/batpu-tools/assembler"
)

// The emulator normally runs headless from the CLI, but for development and
// demos there needs to be a way to poke at programs interactively. This file
// hosts a web server on port 2035 that serves the screen, the character and
// number displays, and a controller, all over a websocket.

type playgroundMessage struct {
	Type   string `json:"type"`
	Source string `json:"source,omitempty"`
	State  uint8  `json:"state,omitempty"`
}

type consoleMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type displayMessage struct {
	Type   string `json:"type"`
	Data   string `json:"data"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type playgroundSession struct {
	conn    *websocket.Conn
	wsMutex sync.Mutex

	instanceMutex sync.Mutex
	instance      *EmulatorInstance
}

func (s *playgroundSession) setInstance(inst *EmulatorInstance) {
	s.instanceMutex.Lock()
	s.instance = inst
	s.instanceMutex.Unlock()
}

func (s *playgroundSession) currentInstance() *EmulatorInstance {
	s.instanceMutex.Lock()
	defer s.instanceMutex.Unlock()
	return s.instance
}

func (s *playgroundSession) stopInstance() {
	if inst := s.currentInstance(); inst != nil {
		inst.Terminate()
	}
}

func (s *playgroundSession) send(message interface{}) {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		log.Printf("marshal: %v", err)
		return
	}

	s.wsMutex.Lock()
	s.conn.WriteMessage(websocket.TextMessage, messageBytes)
	s.wsMutex.Unlock()
}

func (s *playgroundSession) sendConsole(format string, args ...interface{}) {
	s.send(consoleMessage{Type: "console", Text: fmt.Sprintf(format, args...)})
}

func (s *playgroundSession) sendFrame(screen *Screen) {
	frame := screen.Frame()
	pixels := make([]byte, len(frame))
	for i, on := range frame {
		if on {
			pixels[i] = 1
		}
	}

	s.send(displayMessage{
		Type:   "display",
		Data:   base64.StdEncoding.EncodeToString(pixels),
		Width:  ScreenWidth,
		Height: ScreenHeight,
	})
}

func (s *playgroundSession) run(source string) {
	a := assembler.NewAssembler(assembler.DefaultConfig())
	if errs := a.Parse(source); errs != nil && errs.HasErrors() {
		for _, line := range errs.Strings() {
			s.sendConsole("%s\n", line)
		}
		return
	}

	words, errs := a.Assemble()
	if errs != nil {
		for _, line := range errs.Strings() {
			s.sendConsole("%s\n", line)
		}
		return
	}

	instance := NewEmulator(EmulatorConfig{
		Program:      words,
		RuntimeLimit: 100000000,
		RuntimeErrorCallback: func(e RuntimeException) {
			s.sendConsole("Runtime exception: %s\n", e.Message())
		},
		CharDisplayCallback: func(text string) {
			s.sendConsole("%s\n", text)
		},
		NumberDisplayCallback: func(text string) {
			if text != "" {
				s.sendConsole("Number display: %s\n", text)
			}
		},
	})
	s.setInstance(instance)

	// Frames are streamed by polling rather than from the screen callback so
	// a tight draw loop cannot flood the socket.
	go func() {
		prevPushes := int64(0)
		for !instance.halted.Load() && !instance.terminated.Load() {
			time.Sleep(50 * time.Millisecond)
			if pushes := instance.screen.Pushes(); pushes != prevPushes {
				prevPushes = pushes
				s.sendFrame(instance.screen)
			}
		}
		s.sendFrame(instance.screen)
	}()

	instance.Emulate()
	s.sendConsole("Emulator completed after %d instructions\n", instance.ExecutedInstructions())
}

// RunPlayground serves the browser playground on port 2035 and blocks.
func RunPlayground() error {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	handler := func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println(err)
			return
		}

		session := &playgroundSession{conn: conn}
		for {
			_, messageBytes, err := conn.ReadMessage()
			if err != nil {
				session.stopInstance()
				break
			}

			var message playgroundMessage
			if err := json.Unmarshal(messageBytes, &message); err != nil {
				log.Println("json:", err)
				break
			}

			switch message.Type {
			case "run":
				session.stopInstance()
				go session.run(message.Source)
			case "stop":
				session.stopInstance()
			case "controller":
				if inst := session.currentInstance(); inst != nil {
					inst.SetControllerState(message.State)
				}
			default:
				log.Printf("Unknown message type: %s", message.Type)
			}
		}
	}

	http.HandleFunc("/ws", handler)
	http.HandleFunc("/", handleGetPage)
	log.Println("Connect to the playground at http://localhost:2035")
	return http.ListenAndServe(":2035", nil)
}

func handleGetPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(htmlPage))
}

// defaultSource is the sample program preloaded into the playground editor.
const defaultSource = `ldi r1 247
ldi r2 'H'
str r1 r2 0
ldi r2 'I'
str r1 r2 0
str r1 r0 1
hlt`

var htmlPage = `<html>
<head>
	<title>BatPU-2 Playground</title>
</head>
<body style="background-color: #1E1E1E;">
	<h1 style="color: white; display: inline-block;">BatPU-2 Playground</h1>
	<button id="runButton" style="margin-left: 50px; height: 40px; width: 80px;">RUN</button>
	<button id="stopButton" style="margin-left: 10px; height: 40px; width: 80px;">STOP</button>
	<br/>
	<textarea id="source" rows="16" cols="60" style="font-family: monospace; background-color: black; color: white;" spellcheck="false">` + defaultSource + `</textarea>
	<br/>
	<canvas width="320" height="320" style="border: 2px solid white; image-rendering: pixelated;" id="display"></canvas>
	<h2 style="color: white;">Console</h2>
	<div style="width: 980px; padding: 10px; color: white; font-size: 1.2em; font-family: monospace; background-color: black; height: 300px; overflow-y: auto; border: 2px solid white;" id="console"></div>

	<script>
		var socket = new WebSocket("ws://localhost:2035/ws");

		var consoleText = "";

		socket.onopen = function() {
			socket.onmessage = function(event) {
				var data = JSON.parse(event.data);
				if (data.type == "console") {
					consoleText += data.text.replaceAll("\n", "<br/>");
					document.getElementById("console").innerHTML = consoleText;
				} else if (data.type == "display") {
					var canvas = document.getElementById("display");
					var ctx = canvas.getContext("2d");
					var scale = canvas.width / data.width;

					var raw = window.atob(data.data);
					ctx.fillStyle = "black";
					ctx.fillRect(0, 0, canvas.width, canvas.height);
					ctx.fillStyle = "white";
					for (var y = 0; y < data.height; y++) {
						for (var x = 0; x < data.width; x++) {
							if (raw.charCodeAt(y * data.width + x) != 0) {
								ctx.fillRect(x * scale, y * scale, scale, scale);
							}
						}
					}
				}
			};
		};

		socket.onclose = function() {
			setTimeout(function() {
				socket = new WebSocket("ws://localhost:2035/ws");
			}, 3000);
		};

		document.getElementById("runButton").onclick = function() {
			consoleText = "";
			document.getElementById("console").innerHTML = consoleText;
			socket.send(JSON.stringify({
				type: "run",
				source: document.getElementById("source").value
			}));
		};

		document.getElementById("stopButton").onclick = function() {
			socket.send(JSON.stringify({ type: "stop" }));
		};

		var buttons = 0;
		var keyBits = { "ArrowLeft": 1, "ArrowDown": 2, "ArrowRight": 4, "ArrowUp": 8, "b": 16, "a": 32, "Shift": 64, "Enter": 128 };
		document.addEventListener("keydown", function(e) {
			if (e.target.id == "source") return;
			if (keyBits[e.key] !== undefined) {
				buttons |= keyBits[e.key];
				socket.send(JSON.stringify({ type: "controller", state: buttons }));
			}
		});
		document.addEventListener("keyup", function(e) {
			if (e.target.id == "source") return;
			if (keyBits[e.key] !== undefined) {
				buttons &= ~keyBits[e.key];
				socket.send(JSON.stringify({ type: "controller", state: buttons }));
			}
		});
	</script>
</body>
</html>`
