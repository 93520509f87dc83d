package devserver

// pageTemplate is the page served at /. Its verbs are the title and the
// websocket path.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
<div id="lw-root"></div>
<pre id="lw-ops" style="color:#888;font-size:12px;"></pre>
<script>
(function() {
    'use strict';

    var root = document.getElementById('lw-root');
    var opsView = document.getElementById('lw-ops');
    var path = %q;
    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;
    var ws = null;

    function send(el, event, value) {
        if (!ws || ws.readyState !== WebSocket.OPEN) {
            return;
        }
        ws.send(JSON.stringify({
            type: 'event',
            id: Number(el.getAttribute('data-lw-id')),
            event: event,
            value: value
        }));
    }

    ['click', 'input', 'change'].forEach(function(type) {
        root.addEventListener(type, function(e) {
            var el = e.target.closest('[data-lw-id]');
            if (!el) {
                return;
            }
            send(el, type, type === 'click' ? null : e.target.value);
        });
    });

    function render(msg) {
        var active = document.activeElement;
        var focusID = active && active.getAttribute && active.getAttribute('data-lw-id');
        var start = active && active.selectionStart;

        root.innerHTML = msg.html;

        if (focusID) {
            var el = root.querySelector('[data-lw-id="' + focusID + '"]');
            if (el) {
                el.focus();
                if (typeof start === 'number' && el.setSelectionRange) {
                    el.setSelectionRange(start, start);
                }
            }
        }
        opsView.textContent = msg.ops ? JSON.stringify(msg.ops) : '';
    }

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + path + location.search);

        ws.onopen = function() {
            reconnectDelay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }

            switch (msg.type) {
                case 'render':
                    render(msg);
                    break;

                case 'error':
                    console.error('[laiweb]', msg.error);
                    break;
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    if (document.readyState === 'loading') {
        document.addEventListener('DOMContentLoaded', connect);
    } else {
        connect();
    }
})();
</script>
</body>
</html>
`
